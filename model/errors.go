package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Base error categories. Entity-specific errors wrap one of these so callers
// can branch with errors.Is on either the category or the concrete error.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("already exists")
	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	ErrRecipeNotFound  = fmt.Errorf("recipe: %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment: %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user: %w", ErrNotFound)
	ErrDeviceNotFound  = fmt.Errorf("device: %w", ErrNotFound)

	ErrDuplicateEmail  = fmt.Errorf("email: %w", ErrConflict)
	ErrDuplicateDevice = fmt.Errorf("device: %w", ErrConflict)
)

// ValidationError reports missing or malformed required fields. It is
// user-correctable and always detected before any mutation is attempted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError naming the given fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// WrapValidation converts an ozzo-validation error into a ValidationError
// carrying the offending field names. Non-validation errors pass through.
func WrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a relational-store failure. These abort the request and
// are surfaced generically; the wrapped cause never reaches the caller's
// response body.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
