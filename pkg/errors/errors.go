package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrPartialFailure summarizes a batch where some items failed
	ErrPartialFailure ErrorCode = "PARTIAL_FAILURE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Repository errors
	ErrRepositoryOpen      ErrorCode = "REPOSITORY_OPEN"
	ErrMissingHomeSubtree  ErrorCode = "MISSING_HOME_SUBTREE"
	ErrTreeIO              ErrorCode = "TREE_IO"
	ErrUnexpectedTreeEntry ErrorCode = "UNEXPECTED_TREE_ENTRY"
	ErrClone               ErrorCode = "CLONE"

	// Resolution errors
	ErrPathResolution       ErrorCode = "PATH_RESOLUTION"
	ErrContainmentViolation ErrorCode = "CONTAINMENT_VIOLATION"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrLinkConflict  ErrorCode = "LINK_CONFLICT"
)

// HeimwehError represents a structured error with code and details
type HeimwehError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HeimwehError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HeimwehError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HeimwehError) Is(target error) bool {
	var targetErr *HeimwehError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HeimwehError with the given code and message
func New(code ErrorCode, message string) *HeimwehError {
	return &HeimwehError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HeimwehError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HeimwehError {
	return &HeimwehError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HeimwehError
func Wrap(err error, code ErrorCode, message string) *HeimwehError {
	if err == nil {
		return nil
	}
	return &HeimwehError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HeimwehError {
	if err == nil {
		return nil
	}
	return &HeimwehError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HeimwehError) WithDetail(key string, value interface{}) *HeimwehError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var herr *HeimwehError
		if !errors.As(err, &herr) {
			return false
		}
		if herr.Code == code {
			return true
		}
		err = herr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a HeimwehError
func GetErrorCode(err error) ErrorCode {
	var herr *HeimwehError
	if errors.As(err, &herr) {
		return herr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HeimwehError
func GetErrorDetails(err error) map[string]interface{} {
	var herr *HeimwehError
	if errors.As(err, &herr) {
		return herr.Details
	}
	return nil
}
