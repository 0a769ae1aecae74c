package validation

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/vnykmshr/pantry/pkg/common/errors"
)

func TestValidateNotNil(t *testing.T) {
	var nilPtr *int
	var nilSlice []string
	var nilFunc func(string)
	one := 1

	tests := []struct {
		name      string
		value     interface{}
		wantError bool
	}{
		{"untyped nil", nil, true},
		{"nil pointer", nilPtr, true},
		{"nil slice", nilSlice, true},
		{"nil func", nilFunc, true},
		{"pointer", &one, false},
		{"empty slice", []string{}, false},
		{"func", func(string) {}, false},
		{"string", "", false},
		{"int", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotNil("test", "value", tt.value)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if !stderrors.Is(err, errors.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("test", "consumer", "alice"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	err := ValidateNotEmpty("test", "consumer", "")
	if !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive", 10, false},
		{"one", 1, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("test", "count", tt.value)
			if tt.wantError {
				if !stderrors.Is(err, errors.ErrInvalidConfiguration) {
					t.Errorf("expected ErrInvalidConfiguration, got %v", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	tests := []struct {
		name      string
		value     time.Duration
		wantError bool
	}{
		{"positive", time.Second, false},
		{"zero", 0, true},
		{"negative", -time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveDuration("test", "timeout", tt.value)
			if tt.wantError {
				if !stderrors.Is(err, errors.ErrInvalidConfiguration) {
					t.Errorf("expected ErrInvalidConfiguration, got %v", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
