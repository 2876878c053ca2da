// Package cacerr defines the error taxonomy shared by the packer, the
// envelope, and the compression façade.
//
// Every failure is a *Error carrying a Code and the offending input. Callers
// match categories with errors.Is against the exported sentinels (the match
// is by Code only) or with the Is* helpers.
package cacerr

import (
	"errors"
	"fmt"
)

// Code categorizes an error.
type Code string

const (
	// CodeInvalidIdentifier indicates a negative or out-of-range identifier
	// was handed to the packer.
	CodeInvalidIdentifier Code = "INVALID_IDENTIFIER"

	// CodeInvalidCodeFormat indicates a string that is not a CAC envelope.
	CodeInvalidCodeFormat Code = "INVALID_CODE_FORMAT"

	// CodeInvalidVersion indicates an unparseable envelope version.
	CodeInvalidVersion Code = "INVALID_VERSION"

	// CodeInvalidBitWidth indicates a zero, negative, or oversized bit width.
	CodeInvalidBitWidth Code = "INVALID_BIT_WIDTH"

	// CodeUnresolvedReference indicates an external reference absent from
	// the resolver indices.
	CodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"

	// CodeUnknownIdentifier indicates a decoded canonical identifier with no
	// registry record.
	CodeUnknownIdentifier Code = "UNKNOWN_IDENTIFIER"
)

// Sentinels for errors.Is.
var (
	ErrInvalidIdentifier   = &Error{Code: CodeInvalidIdentifier}
	ErrInvalidCodeFormat   = &Error{Code: CodeInvalidCodeFormat}
	ErrInvalidVersion      = &Error{Code: CodeInvalidVersion}
	ErrInvalidBitWidth     = &Error{Code: CodeInvalidBitWidth}
	ErrUnresolvedReference = &Error{Code: CodeUnresolvedReference}
	ErrUnknownIdentifier   = &Error{Code: CodeUnknownIdentifier}
)

// Error is a synchronous, non-retryable failure.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Input is the offending value, rendered as text.
	Input string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Input != "" {
		return fmt.Sprintf("%s: %s (input=%q)", e.Code, msg, e.Input)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error for code with the offending input.
func New(code Code, input any, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Input:   fmt.Sprint(input),
	}
}

// CodeOf extracts the Code from err. Uses errors.As to handle wrapped errors.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// InputOf extracts the offending input from err, if any.
func InputOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Input
	}
	return ""
}

// IsInvalidIdentifier returns true if err is an invalid identifier error.
func IsInvalidIdentifier(err error) bool { return errors.Is(err, ErrInvalidIdentifier) }

// IsUnresolvedReference returns true if err is an unresolved reference error.
func IsUnresolvedReference(err error) bool { return errors.Is(err, ErrUnresolvedReference) }

// IsUnknownIdentifier returns true if err is an unknown identifier error.
func IsUnknownIdentifier(err error) bool { return errors.Is(err, ErrUnknownIdentifier) }

// IsMalformedCode returns true if err reports a malformed envelope of any kind.
func IsMalformedCode(err error) bool {
	return errors.Is(err, ErrInvalidCodeFormat) ||
		errors.Is(err, ErrInvalidVersion) ||
		errors.Is(err, ErrInvalidBitWidth)
}
