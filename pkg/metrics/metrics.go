// Package metrics provides Prometheus instrumentation for pantry components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check results recorded on CheckerChecks.
const (
	ResultMatch   = "match"
	ResultClear   = "clear"
	ResultInvalid = "invalid"
)

// Lookup outcomes recorded on ProfileLookups.
const (
	OutcomeHit      = "hit"
	OutcomeMiss     = "miss"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Registry holds all metric instances for pantry components.
type Registry struct {
	// Checker Metrics
	CheckerChecks      *prometheus.CounterVec
	CheckerMatches     *prometheus.CounterVec
	IngredientsVisited *prometheus.CounterVec

	// Profile Metrics
	ProfileLookups      *prometheus.CounterVec
	ProfileWarmDuration *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer
// under the default "pantry" namespace.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Enabled: true, Registry: reg})
}

// NewRegistryWithConfig creates a metrics registry from a Config. A nil
// Registry falls back to prometheus.DefaultRegisterer and an empty
// Namespace to "pantry". When Enabled is false the collectors still work
// but are registered on a private registry that nothing exports.
func NewRegistryWithConfig(config Config) *Registry {
	reg := config.Registry
	switch {
	case !config.Enabled:
		reg = prometheus.NewRegistry()
	case reg == nil:
		reg = prometheus.DefaultRegisterer
	}
	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Registry{
		CheckerChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "checker",
				Name:        "checks_total",
				Help:        "Total number of allergen containment checks",
				ConstLabels: config.Labels,
			},
			[]string{"checker_name", "result"},
		),

		CheckerMatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "checker",
				Name:        "matches_total",
				Help:        "Total number of ingredients found in an allergen set",
				ConstLabels: config.Labels,
			},
			[]string{"checker_name"},
		),

		IngredientsVisited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "checker",
				Name:        "ingredients_visited_total",
				Help:        "Total number of ingredients passed to visitors",
				ConstLabels: config.Labels,
			},
			[]string{"checker_name"},
		),

		ProfileLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "profile",
				Name:        "lookups_total",
				Help:        "Total number of allergen profile lookups",
				ConstLabels: config.Labels,
			},
			[]string{"store", "outcome"},
		),

		ProfileWarmDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "profile",
				Name:        "warm_duration_seconds",
				Help:        "Time spent refreshing cached allergen profiles",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: config.Labels,
			},
			[]string{"store"},
		),
	}
}
