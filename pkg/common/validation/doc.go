// Package validation provides precondition checks for arguments and
// configuration values across the pantry library.
//
// Argument checks (ValidateNotNil, ValidateNotEmpty) return errors that
// match errors.ErrInvalidArgument. Configuration checks (ValidatePositive,
// ValidatePositiveDuration) return errors that match
// errors.ErrInvalidConfiguration. Both kinds are *errors.ValidationError.
package validation
