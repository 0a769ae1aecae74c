// Package validation provides common validation utilities for the pantry library.
package validation

import (
	"reflect"
	"time"

	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
)

// ValidateNotNil validates that a value is not nil. Typed nils (a nil
// pointer, slice, map or func stored in an interface) are rejected too.
// Returns a ValidationError wrapping ErrInvalidArgument.
func ValidateNotNil(module, field string, value interface{}) error {
	if isNil(value) {
		return perrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError wrapping ErrInvalidArgument.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return perrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidatePositive validates that a configured integer is positive (> 0).
// Returns a ValidationError wrapping ErrInvalidConfiguration.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return perrors.NewConfigError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidatePositiveDuration validates that a configured duration is positive.
// Returns a ValidationError wrapping ErrInvalidConfiguration.
func ValidatePositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return perrors.NewConfigError(module, field, value, "must be positive").
			WithHint("use a duration such as 500ms or 5m")
	}
	return nil
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
