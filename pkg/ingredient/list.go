package ingredient

import (
	"iter"
	"slices"
)

// List is an ordered, immutable sequence of ingredient names.
// Duplicates are kept and order is significant for display only.
type List struct {
	names []string
}

// NewList creates a List holding a copy of names.
func NewList(names ...string) *List {
	return &List{names: slices.Clone(names)}
}

// Len returns the number of ingredients.
func (l *List) Len() int {
	return len(l.names)
}

// At returns the ingredient at position i. It panics if i is out of range.
func (l *List) At(i int) string {
	return l.names[i]
}

// Names returns a copy of the ingredient names in order.
func (l *List) Names() []string {
	return slices.Clone(l.names)
}

// All iterates over the ingredients as (position, name) pairs in order.
func (l *List) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, name := range l.names {
			if !yield(i, name) {
				return
			}
		}
	}
}
