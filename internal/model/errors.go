// Package model holds the Product entity, its closed Category taxonomy, and
// the error types raised by the model and the persistence layer. Errors
// propagate to the caller unmodified; translating them to a transport-level
// response is the caller's job.
package model

import "fmt"

// ValidationError reports data that failed a model-level check: a missing or
// malformed attribute during deserialization, an unrecognized category under
// strict decoding, or a mutating operation invoked on an entity with no
// assigned id.
type ValidationError struct {
	Msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return "validation: " + e.Msg }

// PersistenceError reports a storage engine failure: unreachable store,
// rejected write, or mid-operation error. It wraps the driver cause.
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
