package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced to the HTTP layer. Handlers and services wrap these
// with %w so httpx can pick the status code with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func Forbidden(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}

func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// FromDB translates storage errors at the repository boundary. Uniqueness
// violations come back as gorm.ErrDuplicatedKey (TranslateError is on), so a
// racing duplicate insert turns into a Conflict instead of a server fault.
func FromDB(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(what + " already exists")
	default:
		return err
	}
}
