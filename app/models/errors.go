package models

import (
	"errors"
	"fmt"
)

// FieldError ties a validation failure to a specific field. For batch
// operations Index identifies the offending item in the submitted slice.
type FieldError struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError reports bad shape or range on caller-supplied data.
// It is never retried.
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d field errors)", e.Message, len(e.Fields))
}

// NotFoundError reports a missing year, structure, student or payment.
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       string `json:"id,omitempty"`
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a state conflict such as a duplicate receipt number
// or concurrent current-year writes.
type ConflictError struct {
	Message string `json:"message"`
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string { return e.Message }

// DependencyError wraps a failure of the persistence layer. It is the only
// error class eligible for retry.
type DependencyError struct {
	Op  string
	Err error
}

func NewDependencyError(op string, err error) *DependencyError {
	return &DependencyError{Op: op, Err: err}
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency failure during %s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsDependency(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}
