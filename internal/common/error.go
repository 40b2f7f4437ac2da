package common

import "errors"

// ErrCancelled is returned when the user declines a confirmation prompt.
var ErrCancelled = errors.New("cancelled by user")

// ValidationError reports input rejected locally, before any network call.
// Its message is meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserError carries the single user-facing message a failed operation maps
// to, while keeping the underlying cause reachable via errors.Is/As.
type UserError struct {
	Message string
	Err     error
}

func NewUserError(msg string, cause error) *UserError {
	return &UserError{Message: msg, Err: cause}
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}
