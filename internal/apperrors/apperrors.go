// Package apperrors defines the failure taxonomy shared by every layer of the backend.
// Callers test against the Kind, never against the message.
package apperrors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind is the machine-readable category of a failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// Error is a typed failure carrying a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New returns an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to err. The cause keeps a stack trace so that
// Internal failures can be logged with their origin.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, cause: pkgerrors.WithStack(err)}
}

// Internal wraps an unexpected storage or transport fault.
func Internal(err error, msg string) error {
	return Wrap(KindInternal, err, msg)
}

// KindOf reports the kind of err. Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Envelope is the JSON body every failed request is answered with.
func Envelope(kind Kind, msg string) map[string]any {
	return map[string]any{
		"success": false,
		"error":   map[string]any{"kind": kind.String(), "message": msg},
	}
}

// MessageOf returns the human-readable message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

func IsNotFound(err error) bool     { return err != nil && KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return err != nil && KindOf(err) == KindConflict }
func IsForbidden(err error) bool    { return err != nil && KindOf(err) == KindForbidden }
func IsUnauthorized(err error) bool { return err != nil && KindOf(err) == KindUnauthorized }
func IsValidation(err error) bool   { return err != nil && KindOf(err) == KindValidation }
