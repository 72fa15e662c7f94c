package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound marks a reference to an entity that was never created (e.g. an
// unknown session id). "User has no profile yet" is not an error and must not
// use this.
func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

// Invalid marks input outside a defined domain: unknown enum member, negative
// duration, and so on.
func Invalid(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func Invalidf(code, format string, args ...any) *Error {
	return Invalid(code, fmt.Errorf(format, args...))
}

// StatusOf maps an error to an HTTP status, defaulting to 500 for anything
// that is not an *Error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the machine code of an *Error, or a generic one.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "internal_error"
}
