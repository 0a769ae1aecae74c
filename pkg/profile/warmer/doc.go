// Package warmer keeps a profile.CachedStore populated on a cron schedule.
//
// Example:
//
//	w, err := warmer.New(cached, warmer.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if err := w.Warm(ctx); err != nil { // prime the cache once
//		logger.Warn("initial warm incomplete", "error", err)
//	}
//	w.Start()
//	defer w.Stop()
//
// Schedules accept five or six field cron expressions and descriptors such
// as "@hourly" or "@every 5m". Intervals below one second round up to one
// second.
package warmer
