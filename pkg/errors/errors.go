// Package errors carries machine-readable codes on sharechart errors.
//
// Both front ends branch on the code rather than on message text: the CLI
// prints [UserMessage] with the code appended, and the widget server turns
// the code into an HTTP status.
//
// Codes are grouped by prefix and suffix:
//   - INVALID_*: bad input, options or configuration (HTTP 400)
//   - *_NOT_FOUND: a data source or file that does not exist (HTTP 404)
//   - NETWORK_ERROR, TIMEOUT: fetching a remote source failed
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// A chart configuration that would misstate magnitudes, such as a bar scale
// maximum of zero or a non-positive pie radius, is [ErrCodeInvalidConfiguration]
// and is never swapped for a default.
//
//	if max <= 0 {
//	    return errors.InvalidConfiguration("max must be positive, got %g", max)
//	}
//
//	raw, err := fetch(ctx, url)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidChart         Code = "INVALID_CHART"
	ErrCodeInvalidView          Code = "INVALID_VIEW"
	ErrCodeInvalidColor         Code = "INVALID_COLOR"
	ErrCodeInvalidPath          Code = "INVALID_PATH"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeSourceNotFound Code = "SOURCE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a [Code] with a message meant for users and an optional
// underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with an underlying cause, kept reachable for errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage is the message without the code prefix or cause. Errors
// without a code are returned verbatim.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err is any of the *_NOT_FOUND codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeSourceNotFound:
		return true
	}
	return false
}

// InvalidConfiguration is shorthand for New(ErrCodeInvalidConfiguration, ...).
func InvalidConfiguration(format string, args ...any) *Error {
	return New(ErrCodeInvalidConfiguration, format, args...)
}

// IsInvalidConfiguration reports whether err carries ErrCodeInvalidConfiguration.
func IsInvalidConfiguration(err error) bool {
	return Is(err, ErrCodeInvalidConfiguration)
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
