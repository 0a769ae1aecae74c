package ingredient

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vnykmshr/pantry/internal/log"
	"github.com/vnykmshr/pantry/internal/testutil"
	"github.com/vnykmshr/pantry/pkg/common/errors"
	"github.com/vnykmshr/pantry/pkg/metrics"
)

func TestChecker_RecordsMetrics(t *testing.T) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	checker := NewChecker(WithMetrics(reg, "menu"))

	found, err := checker.ContainsAllergen(NewList(cake...), NewAllergenSet("eggs"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, true)

	found, err = checker.ContainsAllergen(NewList("Flour", "salt"), NewAllergenSet("eggs"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, false)

	_, err = checker.ContainsAllergen(nil, NewAllergenSet("eggs"))
	testutil.AssertErrorIs(t, err, errors.ErrInvalidArgument)

	matches, err := checker.MatchingAllergens(NewList(cake...), NewAllergenSet("eggs", "milk"))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, matches, []string{"eggs", "milk"})

	testutil.AssertNoError(t, checker.ForEachIngredient(NewList(cake...), func(string) {}))

	checks := reg.CheckerChecks
	testutil.AssertEqual(t, promtest.ToFloat64(checks.WithLabelValues("menu", metrics.ResultMatch)), 2.0)
	testutil.AssertEqual(t, promtest.ToFloat64(checks.WithLabelValues("menu", metrics.ResultClear)), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(checks.WithLabelValues("menu", metrics.ResultInvalid)), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.CheckerMatches.WithLabelValues("menu")), 2.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.IngredientsVisited.WithLabelValues("menu")), 6.0)
}

func TestChecker_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	checker := NewChecker(WithLogger(log.NewStructuredLoggerFromSugar(zap.New(core).Sugar())))

	_, err := checker.MatchingAllergens(NewList(cake...), NewAllergenSet("butter"))
	testutil.AssertNoError(t, err)
	err = checker.ForEachIngredient(NewList("a"), nil)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidArgument)

	entries := logs.All()
	testutil.AssertEqual(t, len(entries), 2)
	testutil.AssertEqual(t, entries[0].Message, "allergens found")
	testutil.AssertEqual(t, entries[0].ContextMap()["checker"], interface{}("default"))
	testutil.AssertEqual(t, entries[1].Level, zapcore.WarnLevel)
}

func TestChecker_WithoutOptions(t *testing.T) {
	checker := NewChecker()

	var r testutil.Recorder
	testutil.AssertNoError(t, checker.ForEachIngredient(NewList("a", "b"), r.Visit))
	testutil.AssertSliceEqual(t, r.Values(), []string{"a", "b"})

	found, err := checker.ContainsAllergen(NewList(), NewAllergenSet("eggs"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, false)
}
