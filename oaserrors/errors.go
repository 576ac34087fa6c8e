package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure of any kind.
	ErrReference = errors.New("reference error")

	// ErrMissingReference indicates a local $ref whose target does not exist.
	ErrMissingReference = errors.New("missing reference")

	// ErrUnsupportedReference indicates a $ref outside the supported component paths.
	ErrUnsupportedReference = errors.New("unsupported reference")

	// ErrMissingOperationID indicates an operation without an operationId.
	ErrMissingOperationID = errors.New("missing operationId")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and unsupported versions.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// MissingReferenceError is returned when a local $ref does not resolve
// against the document's component tree.
type MissingReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Location names the referencing field (e.g., "parameters[1]")
	Location string
}

// Error returns a human-readable error message.
func (e *MissingReferenceError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s references missing $ref %q", e.Location, e.Ref)
	}
	return fmt.Sprintf("missing reference: %q", e.Ref)
}

// Is reports whether target matches this error type.
func (e *MissingReferenceError) Is(target error) bool {
	return target == ErrReference || target == ErrMissingReference
}

// UnsupportedReferenceError is returned for a $ref that points outside the
// component paths code generation knows how to name, such as an external file.
type UnsupportedReferenceError struct {
	// Ref is the reference string
	Ref string
	// Location names the referencing field (e.g., "requestBody")
	Location string
	// Expected is the prefix the reference was required to have
	Expected string
}

// Error returns a human-readable error message.
func (e *UnsupportedReferenceError) Error() string {
	msg := fmt.Sprintf("unsupported reference: %q", e.Ref)
	if e.Location != "" {
		msg = fmt.Sprintf("%s references unsupported $ref %q", e.Location, e.Ref)
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(" (expected %s...)", e.Expected)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedReferenceError) Is(target error) bool {
	return target == ErrReference || target == ErrUnsupportedReference
}

// MissingOperationIDError is returned for an operation without an operationId.
type MissingOperationIDError struct {
	Method string
	Path   string
}

// Error returns a human-readable error message.
func (e *MissingOperationIDError) Error() string {
	return "missing operationId"
}

// Is reports whether target matches this error type.
func (e *MissingOperationIDError) Is(target error) bool {
	return target == ErrMissingOperationID
}

// OperationError identifies the operation whose metadata could not be built.
// The underlying cause is available through errors.Unwrap.
type OperationError struct {
	// OperationID is empty when the failure is a missing operationId
	OperationID string
	// Method is the upper-case HTTP method
	Method string
	// Path is the path template (e.g., "/users/{id}")
	Path string
	// Cause is the structural problem
	Cause error
}

// Error returns a message in the form
// "operation createUser (POST /users): requestBody references unsupported $ref ...".
func (e *OperationError) Error() string {
	var msg string
	if e.OperationID != "" {
		msg = fmt.Sprintf("operation %s (%s %s)", e.OperationID, e.Method, e.Path)
	} else {
		msg = fmt.Sprintf("operation %s %s", e.Method, e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
