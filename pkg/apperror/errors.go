package apperror

import (
	"errors"
	"net/http"
	"time"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details any          `json:"details,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Error kinds for financial reporting failures
const (
	KindMissingDateRange       = "missing_date_range"
	KindInvalidDateFormat      = "invalid_date_format"
	KindDataIntegrityViolation = "data_integrity_violation"
	KindStoreUnavailable       = "store_unavailable"
)

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable      = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewMissingDateRangeError reports an absent date range together with a
// suggested default the client can retry with.
func NewMissingDateRangeError(defaultStart, defaultEnd time.Time) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindMissingDateRange,
		Message: "Both startDate and endDate are required",
		Details: map[string]string{
			"suggested_start_date": defaultStart.Format("2006-01-02"),
			"suggested_end_date":   defaultEnd.Format("2006-01-02"),
		},
	}
}

// NewInvalidDateFormatError reports a date that failed to parse
func NewInvalidDateFormatError(field, value string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidDateFormat,
		Message: "Invalid date format for " + field + ": " + value + " (expected YYYY-MM-DD)",
	}
}

// NewDataIntegrityError reports stored data that violates an expected
// invariant, such as two invoices referencing the same work order.
func NewDataIntegrityError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindDataIntegrityViolation,
		Message: message,
	}
}

// NewStoreUnavailableError wraps a backing store failure. The condition is
// retryable by the client.
func NewStoreUnavailableError(err error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindStoreUnavailable,
		Message: "Data store unavailable: " + err.Error(),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
