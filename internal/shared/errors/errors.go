// Package errors classifies failures of the data sources behind the status
// document. Callers translate a failure kind into a topic-specific envelope
// reason; nothing here reaches the HTTP transport.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the kind of a source failure
type ErrorType string

const (
	// ErrorTypeEmpty means the source ran but produced no output.
	ErrorTypeEmpty ErrorType = "empty_output"
	// ErrorTypeNotFound means the requested item does not exist upstream.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeUnavailable means the source could not be reached or run.
	ErrorTypeUnavailable ErrorType = "unavailable"
	// ErrorTypeInvalid means the caller supplied an unusable argument.
	ErrorTypeInvalid ErrorType = "invalid_argument"
	// ErrorTypeMalformed means the source answered with unparsable output.
	ErrorTypeMalformed ErrorType = "malformed_output"
)

// SourceError is a failure of one data source
type SourceError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Source, e.Type, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func newSourceError(t ErrorType, source, message string, cause error) *SourceError {
	return &SourceError{Type: t, Source: source, Message: message, Err: cause}
}

// NewEmptyError reports a source that returned nothing
func NewEmptyError(source, message string) *SourceError {
	return newSourceError(ErrorTypeEmpty, source, message, nil)
}

// NewNotFoundError reports a missing upstream item
func NewNotFoundError(source, message string) *SourceError {
	return newSourceError(ErrorTypeNotFound, source, message, nil)
}

// NewUnavailableError reports an unreachable source
func NewUnavailableError(source string, cause error) *SourceError {
	return newSourceError(ErrorTypeUnavailable, source, "source unavailable", cause)
}

// NewInvalidError reports an unusable argument
func NewInvalidError(source, message string) *SourceError {
	return newSourceError(ErrorTypeInvalid, source, message, nil)
}

// NewMalformedError reports unparsable source output
func NewMalformedError(source string, cause error) *SourceError {
	return newSourceError(ErrorTypeMalformed, source, "malformed output", cause)
}

// GetType returns the failure kind of err, or "" when err is not a SourceError.
func GetType(err error) ErrorType {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Type
	}
	return ""
}

// IsType reports whether err is a SourceError of kind t.
func IsType(err error, t ErrorType) bool {
	return err != nil && GetType(err) == t
}
