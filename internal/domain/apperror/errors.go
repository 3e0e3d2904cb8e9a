// Package apperror holds the error taxonomy shared by every component.
// Callers match with errors.Is on the sentinels and errors.As on *ValidationError.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("temporarily unavailable")
)

func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Unavailable marks a storage fault as transient; the operation rolled back
// and may be retried.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// ValidationError collects one or more messages per offending field.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Err returns nil when nothing was recorded so it can be returned directly.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
