package core

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents field validation errors keyed by field name.
type ValidationError map[string][]string

// Error implements the error interface with a stable, human-readable
// summary of the failed fields.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		if messages := e[field]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{field: {message}}
}

// Add appends a message for a field and returns the error for chaining.
func (e ValidationError) Add(field, message string) ValidationError {
	e[field] = append(e[field], message)
	return e
}
