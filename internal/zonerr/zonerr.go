// Package zonerr implements the fixed error taxonomy of spec §7.
//
// The source this module was distilled from signals failures with
// string-prefixed exceptions (CANON_ERR_*, E0xx); that convention
// cannot be matched with errors.As, and the spec requires machine
// checkable codes, so each failure is a typed Error carrying a fixed
// Code plus best-effort position.
package zonerr

import (
	"errors"
	"fmt"
)

// Code identifies one failure mode from spec §7.
type Code string

const (
	// Encode errors (fatal).
	EncodeUnsupportedType Code = "EncodeUnsupportedType"
	EncodeCycle           Code = "EncodeCycle"
	EncodeOverflow        Code = "EncodeOverflow"

	// Decode syntax errors.
	DecodeBadEscape          Code = "DecodeBadEscape"
	DecodeUnterminatedString Code = "DecodeUnterminatedString"
	DecodeBadCell            Code = "DecodeBadCell"
	DecodeBadNumber          Code = "DecodeBadNumber"
	DecodeBadHeader          Code = "DecodeBadHeader"
	DecodeKeyCollision       Code = "DecodeKeyCollision"
	DecodePoisonKey          Code = "DecodePoisonKey"

	// Strict-mode violations.
	E001RowCount   Code = "E001"
	E002FieldCount Code = "E002"

	// Resource-limit violations.
	E301DocumentBytes Code = "E301"
	E302LineBytes     Code = "E302"
	E303ArrayLength   Code = "E303"
	E304ObjectKeys    Code = "E304"
	DecodeDepth       Code = "DecodeDepth"

	// UTF-8 errors.
	DecodeBadUTF8 Code = "DecodeBadUTF8"
)

// Error is the single error type for every failure in this module.
// Line and Column are best-effort: 0 means "not known" for a given
// failure site.
type Error struct {
	Code    Code
	Message string
	Line    int
	Column  int
	Context string

	wrapped error
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (line %d, col %d): %s", e.Code, e.Message, e.Line, e.Column, e.Context)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, col %d)", e.Code, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds a position-free Error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// At builds an Error with a best-effort source position.
func At(code Code, message string, line, column int) *Error {
	return &Error{Code: code, Message: message, Line: line, Column: column}
}

// Withf formats message like fmt.Sprintf.
func Withf(code Code, line, column int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Line: line, Column: column}
}

// Wrap attaches code to an underlying error, preserving it for errors.Unwrap.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, wrapped: err}
}

// WithContext returns a copy of e with Context set, for callers that
// want to attach the offending line/token after construction.
func (e *Error) WithContext(context string) *Error {
	cp := *e
	cp.Context = context
	return &cp
}

// Is reports whether err is a *Error carrying code.
func Is(err error, code Code) bool {
	var ze *Error
	if errors.As(err, &ze) {
		return ze.Code == code
	}
	return false
}
