// Package apperr defines the business error taxonomy shared by services,
// storage and the HTTP layer. Handlers map these sentinels to status codes;
// anything that does not match one of them is reported as an internal error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input, rejected before
	// touching storage.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a duplicate unique key, e.g. an already registered email.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated marks a missing, invalid or expired credential, or a
	// token whose account no longer exists. The cases are deliberately
	// indistinguishable to callers.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden marks a valid identity acting on a resource it does not own.
	// Never downgraded to not-found.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a resource that is genuinely absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken is the verifier-internal failure; the guard maps it to
	// ErrUnauthenticated before it reaches a caller.
	ErrInvalidToken = errors.New("invalid token")
)

// Validationf wraps ErrValidation with a human-readable detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
