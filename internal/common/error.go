// Package common defines the error taxonomy shared by the repositories, the
// services and every transport binding. Callers match values with errors.Is
// and errors.As; transports translate them with Code.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("duplicate key")

	// Lifecycle rule violations, carried inside *ConflictError.
	ErrBookNotAvailable       = errors.New("book not available")
	ErrBorrowingNotActive     = errors.New("borrowing not active")
	ErrUserNotActive          = errors.New("user not active")
	ErrBookBorrowed           = errors.New("book is borrowed")
	ErrReconciliationRequired = errors.New("reconciliation required")

	// ErrConcurrentUpdate reports a lost conditional update. Services retry it
	// and never let it reach a transport.
	ErrConcurrentUpdate = errors.New("concurrent update")

	// Service-level errors.
	ErrorInternal    = errors.New("internal error")
	ErrorUnavailable = errors.New("service unavailable")
	ErrorValidation  = errors.New("validation error")
)

// Error codes shared by the REST, GraphQL and gRPC bindings.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeValidation  = "VALIDATION"
	CodeUnavailable = "UNAVAILABLE"
	CodeInternal    = "INTERNAL"
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrorNotFound }

// ConflictError reports a request that is well formed but clashes with the
// current state: a uniqueness rule, a lifecycle rule or a detected mismatch.
// Err, when set, is one of the sentinels above.
type ConflictError struct {
	Reason string
	Err    error
}

func NewConflict(err error, format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...), Err: err}
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Unwrap() error { return e.Err }

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrorValidation }

// UnavailableError reports that the store could not be reached or the
// operation ran out of time. Callers may retry.
type UnavailableError struct {
	Op  string
	Err error
}

func NewUnavailable(op string, err error) *UnavailableError {
	return &UnavailableError{Op: op, Err: err}
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: service unavailable", e.Op)
	}
	return fmt.Sprintf("%s: service unavailable: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrorUnavailable }

// Retryable reports whether err is worth retrying unchanged.
func Retryable(err error) bool {
	return errors.Is(err, ErrorUnavailable)
}

// Code classifies err into one of the transport-neutral codes.
func Code(err error) string {
	var (
		nf *NotFoundError
		cf *ConflictError
		ve *ValidationError
		ue *UnavailableError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ue):
		return CodeUnavailable
	case errors.As(err, &nf), errors.Is(err, ErrorNotFound):
		return CodeNotFound
	case errors.As(err, &cf), errors.Is(err, ErrorDuplicate):
		return CodeConflict
	case errors.As(err, &ve):
		return CodeValidation
	default:
		return CodeInternal
	}
}
