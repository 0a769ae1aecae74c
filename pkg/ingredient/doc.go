/*
Package ingredient answers whether a recipe contains something a consumer
must not eat.

A List is an ordered, immutable sequence of ingredient names. An
AllergenSet holds the disallowed names. Membership is exact and
case-sensitive: "eggs" does not match "Eggs".

Basic Usage:

	cake := ingredient.NewList("Flour", "salt", "baking powder", "butter", "eggs", "milk")
	allergens := ingredient.NewAllergenSet("eggs")

	found, err := ingredient.ContainsAllergen(cake, allergens)
	if err != nil {
		return err
	}
	if found {
		fmt.Println("Sorry, cake contains eggs")
	}

Visiting:

ForEachIngredient hands each name to a plain function value. Printing or
any other side effect belongs to the caller:

	err := ingredient.ForEachIngredient(cake, func(name string) {
		fmt.Println("Ingredient name:", name)
	})

Errors:

A nil List, AllergenSet or Visitor is rejected with a
*errors.ValidationError that matches errors.ErrInvalidArgument. An empty
list or a list with no matches is not an error.

Instrumentation:

Checker wraps the same operations with Prometheus metrics and structured
logging:

	checker := ingredient.NewChecker(
		ingredient.WithMetrics(metrics.NewRegistry(prometheus.DefaultRegisterer), "menu"),
		ingredient.WithLogger(logger),
	)
*/
package ingredient
