package profile

import (
	"context"

	"github.com/vnykmshr/pantry/pkg/common/validation"
	"github.com/vnykmshr/pantry/pkg/ingredient"
)

const module = "profile"

// Store keeps one allergen set per consumer.
type Store interface {
	// Allergens returns the consumer's allergen set, or an error matching
	// errors.ErrNotFound if the consumer has no profile.
	Allergens(ctx context.Context, consumer string) (*ingredient.AllergenSet, error)

	// Save replaces the consumer's allergen set.
	Save(ctx context.Context, consumer string, allergens *ingredient.AllergenSet) error

	// Delete removes the consumer's profile. Unknown consumers return
	// an error matching errors.ErrNotFound.
	Delete(ctx context.Context, consumer string) error

	// Consumers lists every consumer with a profile, sorted.
	Consumers(ctx context.Context) ([]string, error)
}

func validateConsumer(consumer string) error {
	return validation.ValidateNotEmpty(module, "consumer", consumer)
}

func validateSave(consumer string, allergens *ingredient.AllergenSet) error {
	if err := validateConsumer(consumer); err != nil {
		return err
	}
	return validation.ValidateNotNil(module, "allergens", allergens)
}
