// Package names orders and selects values with caller-supplied functions.
package names

import (
	"slices"
	"strings"

	"github.com/vnykmshr/pantry/pkg/common/validation"
)

// CompareFold compares a and b ignoring case. Names equal under case
// folding compare as 0.
func CompareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// SortFold sorts names in place, ascending and ignoring case. Names that
// differ only in case keep their relative order.
func SortFold(names []string) {
	slices.SortStableFunc(names, CompareFold)
}

// SortFoldDesc sorts names in place, descending and ignoring case. Names
// that differ only in case keep their relative order.
func SortFoldDesc(names []string) {
	slices.SortStableFunc(names, func(a, b string) int {
		return CompareFold(b, a)
	})
}

// Select returns the items for which keep reports true, in input order.
// items is not modified.
func Select[T any](items []T, keep func(T) bool) ([]T, error) {
	if err := validation.ValidateNotNil("names", "predicate", keep); err != nil {
		return nil, err
	}

	selected := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			selected = append(selected, item)
		}
	}
	return selected, nil
}
