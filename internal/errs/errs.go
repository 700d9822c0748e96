package errs

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure.
type Code string

const (
	ErrUnknown Code = "UNKNOWN"
	ErrRead    Code = "READ"
	ErrDecode  Code = "DECODE"
	ErrWrite   Code = "WRITE"
	ErrConfig  Code = "CONFIG"
)

// Error is a failure with a code, the path involved and an optional cause.
type Error struct {
	Code    Code
	Path    string
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code, a message and a path to err. Returns nil if err is nil.
func Wrap(err error, code Code, message, path string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Path: path, Message: message, Wrapped: err}
}

// Wrapf is Wrap with a formatted message and no path.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// GetCode returns the code of err, or ErrUnknown if err carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code Code) bool {
	return GetCode(err) == code
}
