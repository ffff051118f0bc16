package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every request-terminal failure maps onto one of these so
// the transport can translate them to HTTP statuses in a single place.
var (
	// ErrNotFound covers both absent entities and entities owned by another
	// user, so existence of other users' records is never disclosed.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a domain invariant violation, e.g. deleting the
	// default risk preset while others exist.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized signals a protected endpoint without resolved identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError rejects malformed or out-of-range input before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a field-level validation error.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
