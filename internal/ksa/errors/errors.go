// Package errors defines sentinel errors shared across the update pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Configuration errors
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingRequired = errors.New("missing required field")

	// Data source errors
	ErrBatchFetch    = errors.New("batch fetch failed")
	ErrNoSpreadsheet = errors.New("spreadsheet ID not configured")
	ErrNoMappings    = errors.New("no mapping rows found")

	// Document errors
	ErrDeckNotFound    = errors.New("presentation file not found")
	ErrSlideOutOfRange = errors.New("slide index out of range")
	ErrTargetNotFound  = errors.New("target not found")
	ErrNoTextFrame     = errors.New("shape has no text frame")
	ErrNotATable       = errors.New("named object is not a table")
	ErrSaveFailed      = errors.New("presentation save failed")
)

// Wrap wraps an error with additional context
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is checks if the error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}
