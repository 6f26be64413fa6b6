// Package errors provides custom error types for the placemap system.
// These errors enable programmatic error checking for the fatal conditions of a
// conversion run (no features, no places, malformed output) as well as the
// ordinary I/O, parse and configuration failures around it.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// As is an alias for the standard library errors.As.
var As = errors.As

// Join is an alias for the standard library errors.Join.
var Join = errors.Join

// Common sentinel errors for the placemap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFeatures indicates that the features document held no features
	ErrNoFeatures = errors.New("no features")

	// ErrNoPlaces indicates that every feature was omitted and no place was produced
	ErrNoPlaces = errors.New("no places created")

	// ErrMalformedOutput indicates that a serialized output payload is not well-formed
	ErrMalformedOutput = errors.New("malformed output")
)

// EmptyInputError is returned when a run receives no features at all.
type EmptyInputError struct {
	Source string
}

// Error implements the error interface
func (e *EmptyInputError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("no features in %s", e.Source)
	}
	return "no features"
}

// Is implements errors.Is support
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrNoFeatures
}

// NewEmptyInputError creates a new EmptyInputError
func NewEmptyInputError(source string) *EmptyInputError {
	return &EmptyInputError{Source: source}
}

// NoPlacesError is returned when features were supplied but all of them were omitted.
type NoPlacesError struct {
	Features int
	Omitted  int
}

// Error implements the error interface
func (e *NoPlacesError) Error() string {
	return fmt.Sprintf("no places created: %d of %d features omitted", e.Omitted, e.Features)
}

// Is implements errors.Is support
func (e *NoPlacesError) Is(target error) bool {
	return target == ErrNoPlaces
}

// NewNoPlacesError creates a new NoPlacesError
func NewNoPlacesError(features, omitted int) *NoPlacesError {
	return &NoPlacesError{Features: features, Omitted: omitted}
}

// SerializationError is returned when an output payload fails well-formedness validation.
// It aborts the write of that output only.
type SerializationError struct {
	Output  string // "linking", "places"
	Format  string // "json", "yaml"
	Message string
	Err     error
}

// Error implements the error interface
func (e *SerializationError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("malformed %s output %s: %s", e.Format, e.Output, e.Message)
	}
	return fmt.Sprintf("malformed output %s: %s", e.Output, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SerializationError) Is(target error) bool {
	return target == ErrMalformedOutput
}

// NewSerializationError creates a new SerializationError
func NewSerializationError(output, format, message string, err error) *SerializationError {
	return &SerializationError{
		Output:  output,
		Format:  format,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "encode", "write"
	Resource  string // "config", "features", "linking", "places"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNoFeatures checks if an error reports an empty feature list
func IsNoFeatures(err error) bool {
	return errors.Is(err, ErrNoFeatures)
}

// IsNoPlaces checks if an error reports that every feature was omitted
func IsNoPlaces(err error) bool {
	return errors.Is(err, ErrNoPlaces)
}

// IsSerialization checks if an error reports a malformed output payload
func IsSerialization(err error) bool {
	return errors.Is(err, ErrMalformedOutput)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
