// Package errortypes defines the error taxonomy shared by the HTTP backend
// and the MCP adapter: validation, not-found, unknown-operation, and
// operation (backend/transport) failures.
package errortypes

import (
	"errors"
	"fmt"
)

// Kind classifies an error for envelope translation.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindUnknownOperation Kind = "unknown_operation"
	KindOperation        Kind = "operation"
)

// Error carries a kind, a short human-readable message, and an optional
// underlying cause. The message is what crosses the transport boundary;
// the cause never does.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports bad or missing caller input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a referenced resource that does not exist.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// UnknownOperation reports a call to an operation not in the catalog.
func UnknownOperation(name string) *Error {
	return &Error{Kind: KindUnknownOperation, Message: fmt.Sprintf("unknown operation %q", name)}
}

// Operation reports a backend, storage, or transport failure.
func Operation(err error, message string) *Error {
	return &Error{Kind: KindOperation, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindOperation for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOperation
}

// Message returns the boundary-safe message of err: the typed message when
// err carries one, otherwise err's own text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsOperation(err error) bool { return KindOf(err) == KindOperation }
