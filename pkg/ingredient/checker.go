package ingredient

import (
	"github.com/vnykmshr/pantry/internal/log"
	"github.com/vnykmshr/pantry/pkg/metrics"
)

// Checker runs the package operations with metrics and logging attached.
// It holds no per-call state and is safe for concurrent use.
type Checker struct {
	name    string
	metrics *metrics.Registry
	logger  log.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithMetrics records checks on reg under the given checker name.
func WithMetrics(reg *metrics.Registry, name string) Option {
	return func(c *Checker) {
		c.metrics = reg
		c.name = name
	}
}

// WithLogger sets the logger used for match and rejection events.
func WithLogger(logger log.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a Checker. Without options it neither records metrics
// nor logs.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		name:   "default",
		logger: log.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("checker", c.name)
	return c
}

// ContainsAllergen is the instrumented form of the package-level ContainsAllergen.
func (c *Checker) ContainsAllergen(list *List, allergens *AllergenSet) (bool, error) {
	found, err := ContainsAllergen(list, allergens)
	switch {
	case err != nil:
		c.logger.Warn("rejected allergen check", "error", err)
		c.recordCheck(metrics.ResultInvalid)
	case found:
		c.logger.Debug("allergen found", "ingredients", list.Len())
		c.recordCheck(metrics.ResultMatch)
	default:
		c.recordCheck(metrics.ResultClear)
	}
	return found, err
}

// MatchingAllergens is the instrumented form of the package-level MatchingAllergens.
func (c *Checker) MatchingAllergens(list *List, allergens *AllergenSet) ([]string, error) {
	matches, err := MatchingAllergens(list, allergens)
	if err != nil {
		c.logger.Warn("rejected allergen match", "error", err)
		c.recordCheck(metrics.ResultInvalid)
		return nil, err
	}

	if len(matches) > 0 {
		c.logger.Info("allergens found", "matches", matches)
		c.recordCheck(metrics.ResultMatch)
		if c.metrics != nil {
			c.metrics.CheckerMatches.WithLabelValues(c.name).Add(float64(len(matches)))
		}
	} else {
		c.recordCheck(metrics.ResultClear)
	}
	return matches, nil
}

// ForEachIngredient is the instrumented form of the package-level ForEachIngredient.
func (c *Checker) ForEachIngredient(list *List, visit Visitor) error {
	if err := ForEachIngredient(list, visit); err != nil {
		c.logger.Warn("rejected ingredient visit", "error", err)
		return err
	}
	if c.metrics != nil {
		c.metrics.IngredientsVisited.WithLabelValues(c.name).Add(float64(list.Len()))
	}
	return nil
}

func (c *Checker) recordCheck(result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CheckerChecks.WithLabelValues(c.name, result).Inc()
}
