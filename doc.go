/*
Package pantry provides a Go library for checking recipes against allergen
profiles.

Ingredients (pkg/ingredient):
  - ContainsAllergen: Report whether a recipe holds any disallowed ingredient
  - ForEachIngredient: Visit every ingredient in order
  - Checker: Instrumented checker with metrics and logging

Profiles (pkg/profile):
  - MemoryStore: In-process allergen profiles
  - RedisStore: Shared profiles stored as Redis sets
  - CachedStore: Read-through local cache in front of any store
  - warmer: Cron-scheduled cache refresh

Utilities:
  - names: Case-insensitive ordering and predicate selection
  - vehicle: Composed describers
  - metrics: Prometheus instrumentation

Example usage:

	import "github.com/vnykmshr/pantry/pkg/ingredient"

	cake := ingredient.NewList("Flour", "salt", "eggs", "milk")
	found, err := ingredient.ContainsAllergen(cake, ingredient.NewAllergenSet("eggs"))
	if err != nil {
		// nil list or allergen set
	}
	if found {
		fmt.Println("Sorry, cake contains eggs")
	}

See individual package documentation for detailed usage.
*/
package pantry
