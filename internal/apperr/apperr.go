// Package apperr classifies failures so transports can map them to status
// codes without knowing where they came from.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the class of a failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidInput
	KindConflict
	KindUnauthenticated
	KindTooLarge
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindTooLarge:
		return "too_large"
	}
	return "internal"
}

// Error is a classified, user-facing error. Err, when set, is the cause and
// is never shown to callers.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing entity, e.g. NotFound("company").
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Msg: entity + " Not Found"}
}

// NotFoundMsg reports a missing result with a custom message.
func NotFoundMsg(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Forbidden reports an authenticated caller without rights on the resource.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Msg: "unauthorized to access this api"}
}

// Unauthenticated reports a request without a usable identity.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

// Invalid reports malformed input.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// TooLarge reports a request body over the accepted size.
func TooLarge(msg string) *Error {
	return &Error{Kind: KindTooLarge, Msg: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the user-facing message of err. Unclassified errors get a
// generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "internal server error"
}
