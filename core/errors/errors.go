// Package errors provides standardized error types and helpers for playlist conversion.
//
// The three conversion failures are MalformedClockValueError,
// UnsupportedConstructError and MissingRequiredFieldError. Each one aborts the
// conversion that raised it; callers test for them with errors.Is against the
// sentinels below or errors.As against the concrete types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation, format or construct
	ErrUnsupported = errors.New("unsupported")
	// ErrMalformedClock indicates a clock value that violates its grammar
	ErrMalformedClock = errors.New("malformed clock value")
	// ErrMissingField indicates a dialect-mandated field is absent
	ErrMissingField = errors.New("missing required field")
)

// MalformedClockValueError reports a duration or offset string that does not
// match the grammar it was parsed with.
type MalformedClockValueError struct {
	Text    string // Input as given
	Grammar string // "simple" or "extended"
	Reason  string // What was wrong with it
}

func (e *MalformedClockValueError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed %s clock value %q: %s", e.Grammar, e.Text, e.Reason)
	}
	return fmt.Sprintf("malformed %s clock value %q", e.Grammar, e.Text)
}

func (e *MalformedClockValueError) Unwrap() error {
	return ErrMalformedClock
}

// UnsupportedConstructError reports an IR construct the target dialect cannot express.
type UnsupportedConstructError struct {
	Construct string // "parallel", "infinite repeat" or "timed media"
	Dialect   string // Target dialect, if known
	Path      string // Position of the offending node, e.g. "seq/par[1]"
}

func (e *UnsupportedConstructError) Error() string {
	msg := fmt.Sprintf("unsupported construct: %s", e.Construct)
	if e.Dialect != "" {
		msg = fmt.Sprintf("%s cannot express %s", e.Dialect, e.Construct)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *UnsupportedConstructError) Unwrap() error {
	return ErrUnsupported
}

// MissingRequiredFieldError reports a dialect-mandated field that is absent.
type MissingRequiredFieldError struct {
	Dialect string // Dialect whose schema requires the field
	Element string // Element carrying the field
	Field   string // Attribute or child element name
}

func (e *MissingRequiredFieldError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s: <%s> is missing required %s", e.Dialect, e.Element, e.Field)
	}
	return fmt.Sprintf("%s: missing required %s", e.Dialect, e.Field)
}

func (e *MissingRequiredFieldError) Unwrap() error {
	return ErrMissingField
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "dialect", "file")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "asx", "XML")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewMalformedClock creates a MalformedClockValueError
func NewMalformedClock(text, grammar, reason string) *MalformedClockValueError {
	return &MalformedClockValueError{
		Text:    text,
		Grammar: grammar,
		Reason:  reason,
	}
}

// NewUnsupportedConstruct creates an UnsupportedConstructError
func NewUnsupportedConstruct(construct, dialect string) *UnsupportedConstructError {
	return &UnsupportedConstructError{
		Construct: construct,
		Dialect:   dialect,
	}
}

// NewMissingField creates a MissingRequiredFieldError
func NewMissingField(dialect, element, field string) *MissingRequiredFieldError {
	return &MissingRequiredFieldError{
		Dialect: dialect,
		Element: element,
		Field:   field,
	}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
