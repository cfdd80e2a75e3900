package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrLeadNotFound       = New("LEAD_NOT_FOUND", http.StatusNotFound, "Lead not found")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidStatus      = New("INVALID_STATUS", http.StatusBadRequest, "Invalid status value")
	ErrNotesTooLong       = New("NOTES_TOO_LONG", http.StatusBadRequest, "Notes must be less than 5000 characters")
	ErrRateLimited        = New("RATE_LIMITED", http.StatusTooManyRequests, "Too many submissions. Please try again later.")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrInvalidPassword    = New("INVALID_PASSWORD", http.StatusUnauthorized, "Invalid password")
	ErrHistoryUnsupported = New("HISTORY_UNSUPPORTED", http.StatusNotImplemented, "status history is not available on this backend")
	ErrAdminDisabled      = New("ADMIN_DISABLED", http.StatusServiceUnavailable, "admin access is not configured")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "An error occurred. Please try again or contact us directly.")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
