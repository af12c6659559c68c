package model

import (
	"errors"
	"fmt"
)

// Sentinel causes for whole-record extraction failures. Callers branch on
// these with errors.Is instead of matching error text.
var (
	ErrNotFound           = errors.New("file not found")
	ErrMalformedXML       = errors.New("malformed XML")
	ErrUnsupportedVersion = errors.New("unsupported CFDI version")
)

// ParseError represents a whole-record extraction failure with file context
type ParseError struct {
	File    string
	Kind    error
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.File, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.File, e.Kind, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}

// NewParseError creates a new parse error
func NewParseError(file string, kind error, message string, cause error) *ParseError {
	return &ParseError{
		File:    file,
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}
