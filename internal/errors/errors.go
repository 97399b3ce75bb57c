// Package errors provides the error taxonomy for the journal core.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmptyRange    = errors.New("no records in range")
	ErrStorage       = errors.New("storage failure")
	ErrInvalidInput  = errors.New("input validation failed")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrTimeout       = errors.New("operation timed out")
)

// ValidationError reports a field that failed validation. It is always
// surfaced to the caller and never retried.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NotFoundError reports an operation against an absent record id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// StorageError reports a persistence failure after retries are exhausted.
type StorageError struct {
	Op      string
	Kind    string
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage error [%s] %s: %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("storage error [%s] %s: %s", e.Op, e.Kind, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets callers match any StorageError against the ErrStorage sentinel.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError creates a new StorageError.
func NewStorageError(op, kind, message string, err error) *StorageError {
	return &StorageError{
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// EmptyRangeError reports a summary window containing no records.
// Informational: callers display "no data" instead of failing.
type EmptyRangeError struct {
	Kind string
	From string
	To   string
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no %s records between %s and %s", e.Kind, e.From, e.To)
}

func (e *EmptyRangeError) Unwrap() error {
	return ErrEmptyRange
}

// NewEmptyRangeError creates a new EmptyRangeError.
func NewEmptyRangeError(kind, from, to string) *EmptyRangeError {
	return &EmptyRangeError{Kind: kind, From: from, To: to}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
