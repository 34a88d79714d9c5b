// Package errs defines the error taxonomy shared by the policy, store and
// HTTP layers. Every denial carries a Code that the boundary maps to a wire
// status.
package errs

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

var statusByCode = map[Code]int{
	CodeUnauthenticated: http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeNotFound:        http.StatusNotFound,
	CodeInvalidInput:    http.StatusBadRequest,
	CodeConflict:        http.StatusConflict,
	CodeInternal:        http.StatusInternalServerError,
}

// HTTPStatus returns the status code the boundary layer should answer with.
func (c Code) HTTPStatus() int {
	if status, ok := statusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a reason-bearing failure.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so sentinels like
// ErrForbidden work with errors.Is regardless of their message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Message == "" || t.Message == e.Message)
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Internal wraps a persistence or infrastructure failure.
func Internal(message string, cause error) *Error {
	return Wrap(CodeInternal, message, cause)
}

func Unauthenticated(message string) *Error { return New(CodeUnauthenticated, message) }
func Forbidden(message string) *Error       { return New(CodeForbidden, message) }
func NotFound(message string) *Error        { return New(CodeNotFound, message) }
func InvalidInput(message string) *Error    { return New(CodeInvalidInput, message) }
func Conflict(message string) *Error        { return New(CodeConflict, message) }

// CodeOf extracts the code of err, defaulting to CodeInternal for errors
// that did not originate from this package.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Sentinels that match by code only.
var (
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated}
	ErrForbidden       = &Error{Code: CodeForbidden}
	ErrNotFound        = &Error{Code: CodeNotFound}
	ErrInvalidInput    = &Error{Code: CodeInvalidInput}
	ErrConflict        = &Error{Code: CodeConflict}
	ErrInternal        = &Error{Code: CodeInternal}
)

// Login failures share one message so callers cannot tell an unknown email
// from a wrong password.
var ErrInvalidCredentials = Unauthenticated("Invalid credentials")
