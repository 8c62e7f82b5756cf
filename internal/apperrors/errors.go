package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-readable tag carried by every Error.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindNotFound           Kind = "NotFound"
	KindHierarchyViolation Kind = "HierarchyViolation"
	KindDeletionBlocked    Kind = "DeletionBlocked"
	KindTransactionFailure Kind = "TransactionFailure"
)

// Error is the error type returned by all services in this module.
// Handlers map Kind to an HTTP status; Message is safe to show to callers.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given kind and formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new Error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func HierarchyViolation(format string, args ...interface{}) *Error {
	return New(KindHierarchyViolation, format, args...)
}

func DeletionBlocked(format string, args ...interface{}) *Error {
	return New(KindDeletionBlocked, format, args...)
}

func TransactionFailure(err error, format string, args ...interface{}) *Error {
	return Wrap(KindTransactionFailure, err, format, args...)
}

// KindOf extracts the Kind from an error chain, or "" when the error does not
// carry one.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
