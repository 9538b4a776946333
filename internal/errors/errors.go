package errors

import (
	"errors"
	"fmt"
)

// Domain-specific error types
var (
	// ErrNotFound indicates a referenced mailbox, message, or thread does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrMailboxNotFound indicates the mailbox was not found
	ErrMailboxNotFound = errors.New("mailbox not found")

	// ErrMessageNotFound indicates the message was not found
	ErrMessageNotFound = errors.New("message not found")

	// ErrThreadNotFound indicates no messages share the given thread id
	ErrThreadNotFound = errors.New("thread not found")

	// ErrConfiguration indicates a required platform mailbox is not provisioned
	ErrConfiguration = errors.New("platform mailbox not configured")

	// ErrInvalidReply indicates a reply cannot be routed
	ErrInvalidReply = errors.New("invalid reply")

	// ErrValidation indicates invalid input data
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateEntry indicates a unique constraint violation
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates forbidden access
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeNotFound       = "NOT_FOUND"
	CodeConfiguration  = "CONFIGURATION_ERROR"
	CodeInvalidReply   = "INVALID_REPLY"
	CodeValidation     = "VALIDATION_ERROR"
	CodeDuplicateEntry = "DUPLICATE_ENTRY"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeInternalError  = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// NewValidationError creates a validation error with a caller-facing message
func NewValidationError(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Code:    CodeValidation,
	}
}

// NewInvalidReplyError creates an invalid reply error with a caller-facing message
func NewInvalidReplyError(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidReply,
		Message: message,
		Code:    CodeInvalidReply,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMailboxNotFound) ||
		errors.Is(err, ErrMessageNotFound) ||
		errors.Is(err, ErrThreadNotFound)
}

// IsConfiguration checks if the error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInvalidReply checks if the error is an invalid reply error
func IsInvalidReply(err error) bool {
	return errors.Is(err, ErrInvalidReply)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}

	switch {
	case IsNotFound(err):
		return CodeNotFound
	case IsConfiguration(err):
		return CodeConfiguration
	case IsInvalidReply(err):
		return CodeInvalidReply
	case IsValidation(err):
		return CodeValidation
	case errors.Is(err, ErrDuplicateEntry):
		return CodeDuplicateEntry
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternalError
	}
}
