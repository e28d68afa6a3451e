package config

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates the configuration document is not well-formed YAML.
	ErrParse = errors.New("configuration parse failed")

	// ErrValidation indicates a required field is missing or a field value is invalid.
	ErrValidation = errors.New("configuration validation failed")

	// ErrNotFound indicates the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")
)

// ParseError wraps a YAML decoding failure with the source path.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return ErrParse }

// Cause returns the underlying decoder error.
func (e *ParseError) Cause() error { return e.Err }

// ValidationError reports a missing or invalid configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
func (e *ValidationError) Unwrap() error { return ErrValidation }
