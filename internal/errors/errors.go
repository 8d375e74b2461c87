// Package errors defines the typed error taxonomy returned by the tada
// engine (see spec §7). Every public operation fails with one of these
// types rather than panicking or returning an untyped error.
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Type identifies which member of the engine's error taxonomy occurred.
type Type string

const (
	ShapeMismatch    Type = "ShapeMismatch"
	DimMismatch      Type = "DimMismatch"
	UnsupportedDtype Type = "UnsupportedDtype"
	CastFailure      Type = "CastFailure"
	MissingContext   Type = "MissingContext"
	NameCollision    Type = "NameCollision"
	KeyMismatch      Type = "KeyMismatch"
	OutOfBounds      Type = "OutOfBounds"
	RegexInvalid     Type = "RegexInvalid"
	EmptyInput       Type = "EmptyInput"
)

// Error is the engine's single error type. Op names the operation that
// failed (e.g. "ts_sum", "join_left", "cast_f64") so that callers and
// logs can attribute failures without string-matching the message.
type Error struct {
	Kind    Type
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is/errors.As (stdlib and pkg/errors) see through to
// the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// New builds a bare taxonomy error.
func New(kind Type, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf builds a taxonomy error with a formatted message.
func Newf(kind Type, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause as the wrapped root cause of a taxonomy error,
// using pkg/errors so the original stack trace survives for logging.
func Wrap(kind Type, op string, cause error, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: pkgerrors.Wrap(cause, message)}
}

// Is reports whether err is a tada error of the given kind.
func Is(err error, kind Type) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}

// UnsupportedDtypeErr is a convenience constructor for the most common
// dispatch failure (see internal/dtype's match facility).
func UnsupportedDtypeErr(op, category string, got fmt.Stringer) *Error {
	return Newf(UnsupportedDtype, op, "dtype %s is not in category %q", got.String(), category)
}
