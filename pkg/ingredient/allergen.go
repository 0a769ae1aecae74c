package ingredient

import (
	"slices"
)

// AllergenSet is a set of ingredient names a consumer must not eat.
// Membership is exact and case-sensitive.
type AllergenSet struct {
	members map[string]struct{}
}

// NewAllergenSet creates an AllergenSet from names. Repeated names collapse.
func NewAllergenSet(names ...string) *AllergenSet {
	members := make(map[string]struct{}, len(names))
	for _, name := range names {
		members[name] = struct{}{}
	}
	return &AllergenSet{members: members}
}

// Has reports whether name is in the set.
func (s *AllergenSet) Has(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Len returns the number of distinct allergens.
func (s *AllergenSet) Len() int {
	return len(s.members)
}

// Names returns the allergens in sorted order.
func (s *AllergenSet) Names() []string {
	names := make([]string, 0, len(s.members))
	for name := range s.members {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
