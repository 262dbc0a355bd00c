package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Controllers map these onto HTTP status codes;
// nothing below is ever swallowed.
var (
	// ErrValidation marks malformed or missing required input.
	ErrValidation = errors.New("validation error")

	// ErrReferenceNotFound marks a foreign entity id that does not exist.
	ErrReferenceNotFound = errors.New("referenced entity not found")

	// ErrNotFound marks an absent target row on update/close/transfer.
	ErrNotFound = errors.New("record not found")

	// ErrConflict marks an identifier collision or concurrent-update
	// conflict that survived the bounded retries.
	ErrConflict = errors.New("conflict")

	// ErrStorage marks an underlying persistence failure; the enclosing
	// transaction has been rolled back.
	ErrStorage = errors.New("storage failure")
)

// Authentication failure reasons.
const (
	AuthUserNotFound       = "USER_NOT_FOUND"
	AuthInactive           = "INACTIVE"
	AuthInvalidCredentials = "INVALID_CREDENTIALS"
	AuthInvalidSession     = "INVALID_SESSION"
)

// AuthError is returned by login and session validation. The reason is one
// of the Auth* constants above.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// IsAuthError reports whether err is an AuthError and returns it.
func IsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
