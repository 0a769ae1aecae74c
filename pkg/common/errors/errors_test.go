package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrTimeout", ErrTimeout, "operation timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "ingredient",
				Field:  "list",
				Value:  nil,
				Reason: "cannot be nil",
			},
			want: "ingredient: invalid list=<nil> (cannot be nil)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "profile",
				Field:  "consumer",
				Value:  "",
				Reason: "cannot be empty",
				Hint:   "provide a non-empty consumer",
			},
			want: "profile: invalid consumer= (cannot be empty) - provide a non-empty consumer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	t.Run("argument error", func(t *testing.T) {
		verr := NewValidationError("test", "field", nil, "cannot be nil")
		if !errors.Is(verr, ErrInvalidArgument) {
			t.Error("ValidationError should wrap ErrInvalidArgument")
		}
		if errors.Is(verr, ErrInvalidConfiguration) {
			t.Error("argument error should not wrap ErrInvalidConfiguration")
		}
	})

	t.Run("config error", func(t *testing.T) {
		verr := NewConfigError("config", "timeout", 0, "must be positive")
		if !errors.Is(verr, ErrInvalidConfiguration) {
			t.Error("config error should wrap ErrInvalidConfiguration")
		}
	})

	t.Run("zero kind", func(t *testing.T) {
		verr := &ValidationError{Module: "test"}
		if verr.Unwrap() != ErrInvalidArgument {
			t.Errorf("Unwrap() = %v, want ErrInvalidArgument", verr.Unwrap())
		}
	})
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try a different value")

	if err.Hint != "try a different value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try a different value")
	}

	if result := err.WithHint("new hint"); result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestOperationError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewOperationError("profile", "Save", cause).WithContext("redis unreachable")

	want := "profile.Save failed: connection refused (redis unreachable)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("OperationError should wrap the cause error")
	}

	bare := NewOperationError("profile", "Get", cause)
	if strings.Contains(bare.Error(), "(") {
		t.Errorf("Error() without context should not carry parentheses, got %q", bare.Error())
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		retryable  bool
	}{
		{"validation", NewValidationError("m", "f", nil, "r"), true, false, false},
		{"wrapped validation", &OperationError{Cause: NewValidationError("m", "f", nil, "r")}, true, false, false},
		{"not found", ErrNotFound, false, true, false},
		{"wrapped not found", NewOperationError("profile", "Get", ErrNotFound), false, true, false},
		{"timeout", ErrTimeout, false, false, true},
		{"plain", errors.New("plain"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.validation {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.validation)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}
