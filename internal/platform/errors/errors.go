// Package errors carries the engine's coded error type. Import it as perr
// so the stdlib errors package stays available under its own name
package errors

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode classifies an Error for programmatic handling. Values are
// stable, append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown covers errors that were never classified
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeInvalidArgument flags a bad call-level parameter
	ErrorCodeInvalidArgument

	// ErrorCodeValidation flags an Options struct that failed validation
	ErrorCodeValidation

	// ErrorCodeUnsupported flags an encoding name outside the registry
	ErrorCodeUnsupported

	// ErrorCodeInternal flags reference-data or invariant failures
	ErrorCodeInternal
)

// Error pairs a message with a code plus optional metadata. Metadata is
// attached through the With helpers, never mutated in place
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	orig  error
}

// Error renders the message, appending the wrapped cause when present
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	default:
		return e.msg
	}
}

// Unwrap exposes the cause to the stdlib errors helpers
func (e *Error) Unwrap() error { return e.orig }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input field when one is attached
func (e *Error) Field() string { return e.field }

// Op names the operation that produced the error when one is attached
func (e *Error) Op() string { return e.op }

func (e *Error) clone() *Error {
	c := *e
	return &c
}

// New builds an *Error from a code and a fixed message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with Sprintf formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap builds an *Error that keeps orig reachable through Unwrap
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with Sprintf formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

// WrapIf wraps err only when it is non-nil
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// As digs an *Error out of err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf classifies any error, Unknown for foreign ones
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err classifies as code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// Root walks the chain to the deepest cause
func Root(err error) error {
	for {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
}

// WithField attaches a field name to one of our errors, copying so shared
// values stay frozen. Foreign errors pass through unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := e.clone()
		c.field = field
		return c
	}
	return err
}

// WithOp attaches an operation label under the same copying rule
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := e.clone()
		c.op = op
		return c
	}
	return err
}

// InvalidArgf builds an invalid-argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf builds an options-validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// Unsupportedf builds an unknown-encoding error
func Unsupportedf(format string, a ...any) error { return Newf(ErrorCodeUnsupported, format, a...) }

// Internalf builds an internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeInternal, format, a...) }
