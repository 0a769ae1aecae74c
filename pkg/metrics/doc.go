// Package metrics provides Prometheus instrumentation for pantry components.
//
// # Available Metrics
//
//   - pantry_checker_checks_total{checker_name,result}: containment checks,
//     result is "match", "clear" or "invalid"
//   - pantry_checker_matches_total{checker_name}: ingredients found in an allergen set
//   - pantry_checker_ingredients_visited_total{checker_name}: visitor invocations
//   - pantry_profile_lookups_total{store,outcome}: profile reads, outcome is
//     "hit", "miss", "not_found" or "error"
//   - pantry_profile_warm_duration_seconds{store}: cache warm pass latency
//
// # Custom Registry
//
// Use a dedicated Prometheus registry for isolation, e.g. in tests:
//
//	reg := metrics.NewRegistry(prometheus.NewRegistry())
//	checker := ingredient.NewChecker(ingredient.WithMetrics(reg, "menu"))
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
package metrics
