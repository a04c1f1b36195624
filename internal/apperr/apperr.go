// Package apperr defines the error kinds shared by the services and mapped to
// HTTP statuses at the handler boundary.
package apperr

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotFound is wrapped by each domain package's own not-found error.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed input. Its message is safe to
// return to the client.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid returns a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Missing returns a ValidationError for a required field that was not provided.
func Missing(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// Finite returns a ValidationError for field when v is set to NaN or an
// infinity, which neither the store nor JSON encoding can carry.
func Finite(field string, v *float64) error {
	if v != nil && (math.IsInf(*v, 0) || math.IsNaN(*v)) {
		return Invalid(field, "out of range")
	}

	return nil
}

// StoreError wraps a failure reported by the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError for op. A nil err stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}

	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
