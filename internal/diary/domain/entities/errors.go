package entities

import (
	"errors"
	"fmt"
)

// Ошибки домена дневника.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotEntryOwner        = errors.New("entry belongs to another user")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrMalformedDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrImageTooLarge        = errors.New("image exceeds size limit")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// ValidationError описывает нарушение правила для конкретного поля.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError создает ошибку валидации поля.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is позволяет сопоставлять любую ValidationError с ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
