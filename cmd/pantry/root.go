package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/pantry/internal/config"
	"github.com/vnykmshr/pantry/internal/log"
	"github.com/vnykmshr/pantry/pkg/ingredient"
	"github.com/vnykmshr/pantry/pkg/metrics"
	"github.com/vnykmshr/pantry/pkg/profile"
)

// errAllergenFound makes the process exit non-zero without printing an error.
var errAllergenFound = errors.New("allergen found")

// app carries what every subcommand needs once flags are parsed.
type app struct {
	out        io.Writer
	configPath string
	logLevel   string

	cfg      config.Config
	logger   log.Logger
	registry *prometheus.Registry
	metrics  *metrics.Registry
	checker  *ingredient.Checker

	closers []func() error
}

// run builds the command tree, executes it with args and releases whatever
// the subcommand opened, even when it failed.
func run(out io.Writer, args []string) error {
	return runContext(context.Background(), out, args)
}

func runContext(ctx context.Context, out io.Writer, args []string) error {
	a := &app{out: out}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)

	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pantry",
		Short: "Check recipes against allergen profiles",
		Long: `pantry answers one question: does this recipe contain anything this
consumer must not eat?

Ingredients and allergens come from flags, arguments, a YAML config file,
or stored consumer profiles (memory or Redis).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR (overrides config)")

	rootCmd.AddCommand(
		newCheckCmd(a),
		newIngredientsCmd(a),
		newProfileCmd(a),
		newNamesCmd(a),
		newShoutCmd(a),
		newCarCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	logger, err := log.NewStructuredLogger(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	a.registry = prometheus.NewRegistry()
	mcfg := metrics.DefaultConfig()
	mcfg.Registry = a.registry
	a.metrics = metrics.NewRegistryWithConfig(mcfg)
	a.checker = ingredient.NewChecker(
		ingredient.WithMetrics(a.metrics, cfg.Recipe.Name),
		ingredient.WithLogger(logger),
	)
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openStore builds the configured profile backend behind a local cache.
// The memory backend is seeded from the config's profiles section.
func (a *app) openStore(ctx context.Context) (*profile.CachedStore, error) {
	p := a.cfg.Profile

	var backend profile.Store
	switch p.Backend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: p.RedisAddr, ContextTimeoutEnabled: true})
		a.closers = append(a.closers, rdb.Close)

		rc := profile.DefaultRedisConfig()
		rc.Client = rdb
		rc.Prefix = p.KeyPrefix
		rc.Timeout = p.Timeout
		store, err := profile.NewRedisStore(rc)
		if err != nil {
			return nil, err
		}
		backend = store
	case config.BackendSQLite:
		store, err := profile.OpenSQLiteStore(p.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		backend = store
	default:
		store := profile.NewMemoryStore()
		for consumer, allergens := range a.cfg.Profiles {
			if err := store.Save(ctx, consumer, ingredient.NewAllergenSet(allergens...)); err != nil {
				return nil, err
			}
		}
		backend = store
	}

	a.logger.Debug("profile store opened", "backend", p.Backend)
	return profile.NewCachedStore(backend, p.CacheTTL, 0,
		profile.WithMetrics(a.metrics, p.Backend),
		profile.WithLogger(a.logger),
	)
}

func commandContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}
