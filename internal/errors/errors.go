package errors

import (
	"fmt"
)

// AppError is a structured application error carrying a stable code for the
// boundary layer. Solver non-convergence is deliberately NOT an AppError:
// it is a per-trial outcome, not an application failure.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving an existing code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{Code: CodeInternalError, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if err is an AppError, otherwise "UNKNOWN".
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes for the fatal precondition/consistency taxonomy.
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDataFormat    = "DATA_FORMAT"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeArchiveError  = "ARCHIVE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// ConfigInvalid marks a broken configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DataFormat marks a malformed or incomplete measurement file.
func DataFormat(message string) *AppError {
	return New(CodeDataFormat, message)
}

// InvalidInput marks a request that no trial could satisfy (bad window,
// mismatched ensembles). Checked once at setup, before any trial runs.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// ArchiveError marks a failure talking to the run archive.
func ArchiveError(message string) *AppError {
	return New(CodeArchiveError, message)
}
