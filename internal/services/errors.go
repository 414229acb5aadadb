package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/authz"
)

var (
	// ErrForbidden is returned when the actor lacks the capability for an operation.
	ErrForbidden = authz.ErrForbidden
	// ErrNotFound is returned when a route-bound record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidState is returned when an operation does not apply to the record's current state.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrAIUnavailable is returned when no AI backend is configured.
	ErrAIUnavailable = errors.New("AI service not configured")
)

// ValidationError carries field-keyed messages for invalid input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field unless one is already present.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// ErrOrNil returns e when it holds any field, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}
