package model

import (
	"errors"
	"fmt"
)

var (
	// Business rule errors
	ErrArticleNotFound = errors.New("article not found")
	ErrUnknownCategory = errors.New("unknown article category")

	// Database errors
	ErrDatabaseQuery = errors.New("database query error")
)

// FieldError identifies the first form field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// NewFieldError wraps a validation failure with the offending field name.
func NewFieldError(field string, cause error) *FieldError {
	return &FieldError{Field: field, Reason: cause.Error()}
}

// ToHTTPStatus converts a publish pipeline error to an HTTP status code.
func ToHTTPStatus(err error) int {
	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		return 400
	case errors.Is(err, ErrUnknownCategory):
		return 400
	case errors.Is(err, ErrArticleNotFound):
		return 404
	default:
		return 500
	}
}
