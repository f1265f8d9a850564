package errors

import (
	"fmt"

	"reprokit/domain/core"
)

// AppError represents a structured application error
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeInvalidSeed          = "INVALID_SEED"
	CodeInvalidRuns          = "INVALID_RUNS"
	CodeBackendMisconfigured = "BACKEND_MISCONFIGURED"
	CodeSerializationFailed  = "SERIALIZATION_FAILED"
	CodePersistenceFailed    = "PERSISTENCE_FAILED"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeInvalidInput         = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidSeed reports a seed outside the non-negative integer contract.
func InvalidSeed(seed int64) *AppError {
	return &AppError{
		Code:    CodeInvalidSeed,
		Message: fmt.Sprintf("invalid seed %d", seed),
		Cause:   core.ErrInvalidSeed,
	}
}

// InvalidRuns reports a verification run count below the contract floor of 2.
func InvalidRuns(runs int) *AppError {
	return &AppError{
		Code:    CodeInvalidRuns,
		Message: fmt.Sprintf("invalid run count %d", runs),
		Cause:   core.ErrInsufficientRuns,
	}
}

// BackendMisconfigured reports a backend that is present but failed to seed.
// Absence is never reported this way; a misconfigured backend is a broken
// caller environment and must surface, not be skipped.
func BackendMisconfigured(name string, err error) *AppError {
	return &AppError{
		Code:    CodeBackendMisconfigured,
		Message: fmt.Sprintf("backend %s failed to seed", name),
		Cause:   err,
	}
}

// SerializationFailed reports a record that could not be JSON-encoded
func SerializationFailed(message string, err error) *AppError {
	return &AppError{
		Code:    CodeSerializationFailed,
		Message: message,
		Cause:   err,
	}
}

// PersistenceFailed reports a filesystem write or read failure, keeping the
// attempted path in the message for diagnosis
func PersistenceFailed(path string, err error) *AppError {
	return &AppError{
		Code:    CodePersistenceFailed,
		Message: fmt.Sprintf("manifest persistence failed at %s", path),
		Cause:   err,
	}
}
