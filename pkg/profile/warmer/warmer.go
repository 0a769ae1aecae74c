package warmer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vnykmshr/pantry/internal/log"
	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
	"github.com/vnykmshr/pantry/pkg/common/validation"
	"github.com/vnykmshr/pantry/pkg/metrics"
	"github.com/vnykmshr/pantry/pkg/profile"
)

const module = "warmer"

// DefaultSchedule refreshes cached profiles every five minutes.
const DefaultSchedule = "@every 5m"

// DefaultConcurrency is the number of consumers refreshed at once.
const DefaultConcurrency = 4

// Config holds configuration for a Warmer.
type Config struct {
	// Schedule is a cron expression (seconds optional) or descriptor such
	// as "@every 5m".
	Schedule string

	// Timeout bounds a single scheduled warm pass.
	Timeout time.Duration

	// Concurrency limits how many consumers are refreshed in parallel.
	Concurrency int

	// Metrics, if set, records pass durations.
	Metrics *metrics.Registry

	// Logger receives pass results. Defaults to a no-op logger.
	Logger log.Logger
}

// DefaultConfig returns a Warmer configuration using DefaultSchedule.
func DefaultConfig() Config {
	return Config{
		Schedule:    DefaultSchedule,
		Timeout:     30 * time.Second,
		Concurrency: DefaultConcurrency,
	}
}

// Warmer reloads every consumer's profile into a CachedStore on a schedule.
type Warmer struct {
	store       *profile.CachedStore
	cron        *cron.Cron
	timeout     time.Duration
	concurrency int
	metrics     *metrics.Registry
	logger      log.Logger

	mu      sync.Mutex
	running bool
}

var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a Warmer for store. The schedule is validated here, not at Start.
func New(store *profile.CachedStore, config Config) (*Warmer, error) {
	if err := validation.ValidateNotNil(module, "store", store); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty(module, "schedule", config.Schedule); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveDuration(module, "timeout", config.Timeout); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive(module, "concurrency", config.Concurrency); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = log.NewNoOpLogger()
	}

	w := &Warmer{
		store:       store,
		timeout:     config.Timeout,
		concurrency: config.Concurrency,
		metrics:     config.Metrics,
		logger:      logger.With("component", module, "store", store.Name()),
	}

	w.cron = cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := w.cron.AddFunc(config.Schedule, w.scheduledPass); err != nil {
		return nil, perrors.NewConfigError(module, "schedule", config.Schedule, err.Error()).
			WithHint("use a cron expression or a descriptor like @every 5m")
	}
	return w, nil
}

// Warm refreshes every consumer once. Consumers that fail are reported
// together in the returned error; the rest are still refreshed. A consumer
// deleted between listing and refresh is not an error.
func (w *Warmer) Warm(ctx context.Context) error {
	start := time.Now()
	defer func() {
		if w.metrics != nil {
			w.metrics.ProfileWarmDuration.WithLabelValues(w.store.Name()).Observe(time.Since(start).Seconds())
		}
	}()

	consumers, err := w.store.Consumers(ctx)
	if err != nil {
		return perrors.NewOperationError(module, "Warm", err)
	}

	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, consumer := range consumers {
		g.Go(func() error {
			if err := w.store.Refresh(ctx, consumer); err != nil && !perrors.IsNotFound(err) {
				mu.Lock()
				result = multierror.Append(result, fmt.Errorf("%s: %w", consumer, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := result.ErrorOrNil(); err != nil {
		return perrors.NewOperationError(module, "Warm", err).
			WithContext(fmt.Sprintf("%d of %d consumers failed", result.Len(), len(consumers)))
	}

	w.logger.Debug("profiles warmed", "consumers", len(consumers), "duration", time.Since(start))
	return nil
}

// Start begins scheduled warming. Calling Start twice has no effect.
func (w *Warmer) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.cron.Start()
}

// Stop halts scheduling and waits for an in-flight pass to finish.
func (w *Warmer) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	<-w.cron.Stop().Done()
}

// Running reports whether scheduled warming is active.
func (w *Warmer) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Warmer) scheduledPass() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.Warm(ctx); err != nil {
		w.logger.Error("scheduled warm failed", "error", err)
	}
}
