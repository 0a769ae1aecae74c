// Package profile stores allergen sets per consumer.
//
// Four Store implementations are provided:
//   - MemoryStore: process-local, for tests and single-instance use
//   - RedisStore: one Redis set per consumer plus an index set, shared
//     across instances. Timed-out operations are retried.
//   - SQLiteStore: a local database file that survives restarts
//   - CachedStore: a read-through local cache in front of any Store
//
// Example:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	cfg := profile.DefaultRedisConfig()
//	cfg.Client = rdb
//	backend, err := profile.NewRedisStore(cfg)
//	if err != nil {
//		return err
//	}
//	store, err := profile.NewCachedStore(backend, time.Minute, 2*time.Minute)
//	if err != nil {
//		return err
//	}
//
//	allergens, err := store.Allergens(ctx, "alice")
//	if errors.Is(err, perrors.ErrNotFound) {
//		// no profile yet
//	}
//
// See package warmer for keeping a CachedStore fresh on a schedule.
package profile
