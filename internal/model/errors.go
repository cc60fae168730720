package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("model: validation failed")
	ErrNotFound    = errors.New("model: task not found")
	ErrPersistence = errors.New("model: persistence failed")
)

// ValidationError rejects an input before any state is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("model: task %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PersistenceError reports a failed load or save. On save the in-memory
// mutation has already been applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("model: %s state: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
