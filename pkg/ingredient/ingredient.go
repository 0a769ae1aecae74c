package ingredient

import (
	"github.com/vnykmshr/pantry/pkg/common/validation"
)

const module = "ingredient"

// Visitor is called once per ingredient, in list order.
type Visitor func(name string)

// ContainsAllergen reports whether any ingredient in list is in allergens.
// The scan stops at the first match. An empty list never matches.
// A nil list or allergen set is rejected with an invalid argument error.
func ContainsAllergen(list *List, allergens *AllergenSet) (bool, error) {
	if err := validateInputs(list, allergens); err != nil {
		return false, err
	}

	for _, name := range list.names {
		if allergens.Has(name) {
			return true, nil
		}
	}
	return false, nil
}

// MatchingAllergens returns every ingredient of list found in allergens, in
// list order. Duplicated ingredients are reported each time they appear.
func MatchingAllergens(list *List, allergens *AllergenSet) ([]string, error) {
	if err := validateInputs(list, allergens); err != nil {
		return nil, err
	}

	var matches []string
	for _, name := range list.names {
		if allergens.Has(name) {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// ForEachIngredient calls visit for each ingredient of list in order.
// The list is never modified, so repeated calls see the same sequence.
func ForEachIngredient(list *List, visit Visitor) error {
	if err := validation.ValidateNotNil(module, "list", list); err != nil {
		return err
	}
	if err := validation.ValidateNotNil(module, "visitor", visit); err != nil {
		return err
	}

	for _, name := range list.names {
		visit(name)
	}
	return nil
}

func validateInputs(list *List, allergens *AllergenSet) error {
	if err := validation.ValidateNotNil(module, "list", list); err != nil {
		return err
	}
	return validation.ValidateNotNil(module, "allergens", allergens)
}
