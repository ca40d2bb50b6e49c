package itemtypes

import (
	"errors"
	"fmt"

	"github.com/gohealth/itemtypes/xmlio"
)

// Sentinel errors shared across the module. Wrap them with %w so callers
// can test with errors.Is.
var (
	// ErrElementMissing is returned when ParseXML cannot find an
	// element a type expects. It is the same sentinel the xmlio
	// required readers wrap, so one errors.Is check covers both.
	ErrElementMissing = xmlio.ErrNoElement

	// ErrUnknownTypeID is returned when a <thing> payload carries a
	// type-id no registered type claims.
	ErrUnknownTypeID = errors.New("unknown thing type id")

	// ErrValueOutOfRange is returned by setters rejecting out-of-domain
	// values.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrRequiredFieldUnset is returned by WriteXML when a mandatory
	// field was never assigned.
	ErrRequiredFieldUnset = errors.New("required field not set")
)

// ParseError reports a failure while reading thing XML: a missing root
// element or malformed scalar content.
type ParseError struct {
	// Type is the thing type or composite being parsed, e.g. "height".
	Type string
	// Element is the element that was missing or malformed.
	Element string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: element %q: %v", e.Type, e.Element, e.Err)
	}
	return fmt.Sprintf("parse %s: element %q not found", e.Type, e.Element)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrElementMissing
}

// NewParseError reports a missing root or child element.
func NewParseError(typeName, element string) *ParseError {
	return &ParseError{Type: typeName, Element: element}
}

// WrapParseError reports malformed content inside an element.
func WrapParseError(typeName, element string, err error) *ParseError {
	return &ParseError{Type: typeName, Element: element, Err: err}
}

// SerializationError reports a WriteXML refusal: a mandatory field was
// never set. It is raised before any XML is emitted.
type SerializationError struct {
	// Type is the thing type being written.
	Type string
	// Field names the unset mandatory field.
	Field string
}

// Error implements error.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("write %s: required field %q not set", e.Type, e.Field)
}

// Unwrap makes errors.Is(err, ErrRequiredFieldUnset) work.
func (e *SerializationError) Unwrap() error { return ErrRequiredFieldUnset }

// NewSerializationError names the unset mandatory field.
func NewSerializationError(typeName, field string) *SerializationError {
	return &SerializationError{Type: typeName, Field: field}
}

// ValidationError reports a rejected assignment: the value handed to a
// constructor or setter is outside the field's domain.
type ValidationError struct {
	// Field names the offending parameter.
	Field string
	// Reason describes the constraint that was violated.
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValueOutOfRange) work.
func (e *ValidationError) Unwrap() error { return ErrValueOutOfRange }

// NewValidationError names the offending field and the violated constraint.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
