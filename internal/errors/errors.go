package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeCatalogUnavailable   = "CATALOG_UNAVAILABLE"
	ErrCodeDirectoryUnavailable = "DIRECTORY_UNAVAILABLE"
	ErrCodeFetchFailed          = "FETCH_FAILED"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "FETCH_FAILED")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err, or anything it wraps, is an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError returns the AppError inside err, wrapping anything else as an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewCatalogUnavailableError is returned when the game catalog cannot be opened or queried.
func NewCatalogUnavailableError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeCatalogUnavailable,
		Message: fmt.Sprintf("catalog unavailable: %s", path),
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

// NewDirectoryUnavailableError is returned when an asset directory cannot be enumerated.
func NewDirectoryUnavailableError(dir string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeDirectoryUnavailable,
		Message: fmt.Sprintf("asset directory unavailable: %s", dir),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewFetchFailedError covers every failure of an asset download: bad URL,
// transport error, non-success status and local write errors.
func NewFetchFailedError(url string, reason string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFetchFailed,
		Message: fmt.Sprintf("fetch %s failed: %s", url, reason),
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}
