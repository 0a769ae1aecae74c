package profile

import (
	"context"
	"slices"
	"sync"

	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
	"github.com/vnykmshr/pantry/pkg/ingredient"
)

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string][]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string][]string)}
}

func (m *MemoryStore) Allergens(_ context.Context, consumer string) (*ingredient.AllergenSet, error) {
	if err := validateConsumer(consumer); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	names, ok := m.profiles[consumer]
	if !ok {
		return nil, perrors.NewOperationError(module, "Allergens", perrors.ErrNotFound).WithContext(consumer)
	}
	return ingredient.NewAllergenSet(names...), nil
}

func (m *MemoryStore) Save(_ context.Context, consumer string, allergens *ingredient.AllergenSet) error {
	if err := validateSave(consumer, allergens); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[consumer] = allergens.Names()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, consumer string) error {
	if err := validateConsumer(consumer); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[consumer]; !ok {
		return perrors.NewOperationError(module, "Delete", perrors.ErrNotFound).WithContext(consumer)
	}
	delete(m.profiles, consumer)
	return nil
}

func (m *MemoryStore) Consumers(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	consumers := make([]string, 0, len(m.profiles))
	for consumer := range m.profiles {
		consumers = append(consumers, consumer)
	}
	slices.Sort(consumers)
	return consumers, nil
}
