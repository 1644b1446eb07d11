package errors

import (
	"fmt"
	"time"
)

// Error types for the autoheader system
type ErrorType string

const (
	// Header/processing errors
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeParse      ErrorType = "parse"

	// File errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// ValidationError reports a header text that fails basic sanity checks
// (empty, or looks like executable code rather than prose). It is fatal to
// initialization and never raised per-file.
type ValidationError struct {
	Type       ErrorType
	Header     string
	Underlying error
	Timestamp  time.Time
}

// NewValidationError creates a new header validation error
func NewValidationError(header string, err error) *ValidationError {
	return &ValidationError{
		Type:       ErrorTypeValidation,
		Header:     header,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid header text: %v", e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// ParseError reports a per-file segmentation failure. The file is skipped
// and processing continues with the remaining files.
type ParseError struct {
	Type       ErrorType
	FilePath   string
	Language   string
	Underlying error
	Timestamp  time.Time
}

// NewParseError creates a new parse error
func NewParseError(lang string, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		Language:   lang,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile adds file information to the error
func (e *ParseError) WithFile(path string) *ParseError {
	e.FilePath = path
	return e
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s parse failed for %s: %v", e.Language, e.FilePath, e.Underlying)
	}
	return fmt.Sprintf("%s parse failed: %v", e.Language, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable reports that parse errors never abort the run
func (e *ParseError) IsRecoverable() bool {
	return true
}

// FileError represents a file-related error
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error
func NewFileError(op, path string, err error) *FileError {
	errorType := ErrorTypeFileNotFound
	if isPermissionError(err) {
		errorType = ErrorTypePermission
	}

	return &FileError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// isPermissionError checks if the error is a permission error
func isPermissionError(err error) bool {
	errStr := err.Error()
	return errStr == "permission denied" || errStr == "access denied"
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError collects the per-file errors of one run
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
