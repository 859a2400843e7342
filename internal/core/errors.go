package core

import (
	"errors"
	"fmt"

	"github.com/inovacc/nutrilog/internal/api"
)

// ErrNotLoggedIn is returned when an operation needs a session and has none
// or the server rejected the token.
var ErrNotLoggedIn = errors.New("not logged in, run `nutrilog login`")

// ValidationError rejects user input before any computation or remote call
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteError wraps a failed API call with the operation that issued it
type RemoteError struct {
	Operation string
	Err       error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// remote wraps err for operation. Rejected tokens also match ErrNotLoggedIn.
func remote(operation string, err error) error {
	if err == nil {
		return nil
	}

	if api.IsUnauthorized(err) {
		return &RemoteError{Operation: operation, Err: fmt.Errorf("%w: %w", ErrNotLoggedIn, err)}
	}

	return &RemoteError{Operation: operation, Err: err}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
