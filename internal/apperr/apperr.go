// Package apperr defines the error taxonomy shared by the auth and reporting
// services. Transport code maps a Kind to a status code; the Code is the
// stable, client-facing reason string.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a classified error with an optional underlying cause.
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and code, so sentinel-style
// comparisons such as errors.Is(err, apperr.Unauthorized("InvalidCredentials")) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

func Validation(code string) *Error   { return &Error{Kind: KindValidation, Code: code} }
func Conflict(code string) *Error     { return &Error{Kind: KindConflict, Code: code} }
func Unauthorized(code string) *Error { return &Error{Kind: KindUnauthorized, Code: code} }
func NotFound(code string) *Error     { return &Error{Kind: KindNotFound, Code: code} }

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "InternalError", Err: err}
}

// Wrap attaches a cause to a classified error.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
