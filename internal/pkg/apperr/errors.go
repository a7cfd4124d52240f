// Package apperr defines the error kinds shared by the service layers.
// Callers wrap one of the sentinels with context using fmt.Errorf and %w;
// the transport layer inspects the kind with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation marks input that failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated caller lacking permission.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness, overlap or concurrent-update clash.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState marks a transition not allowed from the current state.
	ErrInvalidState = errors.New("invalid state")
)

// Kind returns the sentinel wrapped by err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict, ErrInvalidState} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
