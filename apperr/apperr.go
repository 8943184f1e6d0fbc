// Package apperr defines the error taxonomy shared by the lifecycle
// services and the HTTP layer: not-found, validation, and invalid-operation
// failures. Anything else is treated as an internal fault by the boundary.
package apperr

import "fmt"

// NotFoundError reports that a referenced entity id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s was not found", e.Resource, e.ID)
}

// NewNotFound creates a NotFoundError for the given resource and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports that input violates a field constraint.
// Fields optionally carries per-field messages for multi-field reporting.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a single message and no
// field map.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewFieldValidation creates a ValidationError carrying a field→messages map.
func NewFieldValidation(message string, fields map[string][]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// InvalidOperationError reports that a state-dependent business rule
// blocks the requested action.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

// NewInvalidOperation creates an InvalidOperationError.
func NewInvalidOperation(message string) *InvalidOperationError {
	return &InvalidOperationError{Message: message}
}
