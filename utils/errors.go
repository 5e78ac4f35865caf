package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable reasons carried by external-service errors so callers can
// act on the failure mode instead of parsing messages.
const (
	ReasonAmountExceedsLimit = "amount_exceeds_limit"
	ReasonGatewayRejected    = "gateway_rejected"
	ReasonGatewayConfig      = "gateway_misconfigured"
	ReasonCourierUnreachable = "courier_unreachable"
	ReasonCourierRejected    = "courier_rejected"
)

// AppError represents an application error
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError creates a 400 error for missing or malformed input.
// Details typically carries the offending field names.
func ValidationError(message string, details interface{}) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Details: details}
}

// AuthorizationError creates a 401/403 error.
func AuthorizationError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

// ForbiddenError creates a 403 Forbidden error
func ForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// ConflictError creates a 409 error for duplicate keys and already-terminal
// transition attempts.
func ConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

// ExternalServiceError creates a 502 error for gateway or courier failures,
// tagged with a machine-readable sub-reason.
func ExternalServiceError(message, reason string, err error) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message, Reason: reason, Err: err}
}

// GetAppError returns the AppError if the error is one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusConflict
	}
	return false
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusNotFound
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusBadRequest
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
