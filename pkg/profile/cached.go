package profile

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vnykmshr/pantry/internal/log"
	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
	"github.com/vnykmshr/pantry/pkg/common/validation"
	"github.com/vnykmshr/pantry/pkg/ingredient"
	"github.com/vnykmshr/pantry/pkg/metrics"
)

// Option configures a CachedStore.
type Option func(*CachedStore)

// WithMetrics records lookups on reg under the given store name.
func WithMetrics(reg *metrics.Registry, name string) Option {
	return func(c *CachedStore) {
		c.metrics = reg
		c.name = name
	}
}

// WithLogger sets the logger used for backend failures.
func WithLogger(logger log.Logger) Option {
	return func(c *CachedStore) {
		c.logger = logger
	}
}

// CachedStore is a read-through cache in front of another Store.
// Writes go to the backend first and then drop the cached entry. A backend
// read that overlaps a write to the same consumer is returned but not cached.
type CachedStore struct {
	backend Store
	cache   *gocache.Cache
	name    string
	metrics *metrics.Registry
	logger  log.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

// NewCachedStore wraps backend with a local cache whose entries live for
// ttl. A zero cleanupInterval disables the background janitor; expired
// entries are then only dropped when read.
func NewCachedStore(backend Store, ttl, cleanupInterval time.Duration, opts ...Option) (*CachedStore, error) {
	if err := validation.ValidateNotNil(module, "backend", backend); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveDuration(module, "cache_ttl", ttl); err != nil {
		return nil, err
	}
	if cleanupInterval < 0 {
		return nil, perrors.NewConfigError(module, "cleanup_interval", cleanupInterval, "cannot be negative").
			WithHint("use 0 to disable the janitor")
	}

	c := &CachedStore{
		backend: backend,
		cache:   gocache.New(ttl, cleanupInterval),
		name:    "cached",
		logger:  log.NewNoOpLogger(),

		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("store", c.name)
	return c, nil
}

// Name returns the store name used in metrics and logs.
func (c *CachedStore) Name() string {
	return c.name
}

func (c *CachedStore) Allergens(ctx context.Context, consumer string) (*ingredient.AllergenSet, error) {
	if err := validateConsumer(consumer); err != nil {
		return nil, err
	}

	if v, ok := c.cache.Get(consumer); ok {
		c.recordLookup(metrics.OutcomeHit)
		return v.(*ingredient.AllergenSet), nil
	}

	gen := c.generation(consumer)
	allergens, err := c.backend.Allergens(ctx, consumer)
	switch {
	case perrors.IsNotFound(err):
		c.recordLookup(metrics.OutcomeNotFound)
		return nil, err
	case err != nil:
		c.logger.Error("profile lookup failed", "consumer", consumer, "error", err)
		c.recordLookup(metrics.OutcomeError)
		return nil, err
	}

	c.recordLookup(metrics.OutcomeMiss)
	c.fill(consumer, gen, allergens)
	return allergens, nil
}

func (c *CachedStore) Save(ctx context.Context, consumer string, allergens *ingredient.AllergenSet) error {
	if err := c.backend.Save(ctx, consumer, allergens); err != nil {
		return err
	}
	c.invalidate(consumer)
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, consumer string) error {
	err := c.backend.Delete(ctx, consumer)
	c.invalidate(consumer)
	return err
}

func (c *CachedStore) Consumers(ctx context.Context) ([]string, error) {
	return c.backend.Consumers(ctx)
}

// Refresh reloads one consumer from the backend into the cache. A consumer
// that no longer exists is evicted and reported as not found.
func (c *CachedStore) Refresh(ctx context.Context, consumer string) error {
	gen := c.generation(consumer)
	allergens, err := c.backend.Allergens(ctx, consumer)
	if err != nil {
		if perrors.IsNotFound(err) {
			c.cache.Delete(consumer)
		}
		return err
	}
	c.fill(consumer, gen, allergens)
	return nil
}

// Cached reports how many profiles are currently held locally, including
// expired entries not yet cleaned up.
func (c *CachedStore) Cached() int {
	return c.cache.ItemCount()
}

func (c *CachedStore) generation(consumer string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[consumer]
}

// fill caches allergens read at generation gen, unless a write has since
// bumped it.
func (c *CachedStore) fill(consumer string, gen uint64, allergens *ingredient.AllergenSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[consumer] != gen {
		return
	}
	c.cache.SetDefault(consumer, allergens)
}

func (c *CachedStore) invalidate(consumer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[consumer]++
	c.cache.Delete(consumer)
}

func (c *CachedStore) recordLookup(outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.ProfileLookups.WithLabelValues(c.name, outcome).Inc()
}
