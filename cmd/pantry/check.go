package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vnykmshr/pantry/pkg/ingredient"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		consumer  string
		allergens []string
	)

	cmd := &cobra.Command{
		Use:   "check [ingredient...]",
		Short: "Check a recipe for allergens",
		Long: `Prints every ingredient, then reports which of them are allergens.

Ingredients default to the configured recipe. Allergens come from
--allergen, else from the --consumer profile, else from the config.
Exits with status 1 when an allergen is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := a.recipe(args)

			set, err := a.allergens(cmd, consumer, allergens)
			if err != nil {
				return err
			}

			err = a.checker.ForEachIngredient(list, func(name string) {
				fmt.Fprintln(a.out, name)
			})
			if err != nil {
				return err
			}

			matches, err := a.checker.MatchingAllergens(list, set)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintf(a.out, "%s is safe to eat\n", a.cfg.Recipe.Name)
				return nil
			}

			fmt.Fprintf(a.out, "Sorry, %s contains %s\n", a.cfg.Recipe.Name, strings.Join(distinct(matches), ", "))
			return errAllergenFound
		},
	}

	cmd.Flags().StringVar(&consumer, "consumer", "", "load allergens from this consumer's profile")
	cmd.Flags().StringArrayVarP(&allergens, "allergen", "a", nil, "allergen to check for (repeatable)")
	return cmd
}

func newIngredientsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ingredients",
		Short: "List the configured recipe's ingredients in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.checker.ForEachIngredient(a.recipe(nil), func(name string) {
				fmt.Fprintf(a.out, "Ingredient name: %s\n", name)
			})
		},
	}
}

func (a *app) recipe(args []string) *ingredient.List {
	if len(args) > 0 {
		return ingredient.NewList(args...)
	}
	return ingredient.NewList(a.cfg.Recipe.Ingredients...)
}

func (a *app) allergens(cmd *cobra.Command, consumer string, flagged []string) (*ingredient.AllergenSet, error) {
	switch {
	case len(flagged) > 0:
		return ingredient.NewAllergenSet(flagged...), nil
	case consumer != "":
		ctx, cancel := commandContext(cmd, a.cfg.Profile.Timeout)
		defer cancel()

		store, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		return store.Allergens(ctx, consumer)
	default:
		return ingredient.NewAllergenSet(a.cfg.Allergens...), nil
	}
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
