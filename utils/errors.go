package utils

import (
	"fmt"
	"net/http"
)

// ServiceError represents a service-level error with context
type ServiceError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Details    string `json:"details,omitempty"`
	Cause      error  `json:"-"` // Original error, not exposed in JSON
}

func (e ServiceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError creates a new service error
func NewServiceError(code, message string) error {
	return ServiceError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewServiceErrorWithStatus creates a service error with specific HTTP status
func NewServiceErrorWithStatus(code, message string, statusCode int) error {
	return ServiceError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// GetServiceError extracts a ServiceError from an error
func GetServiceError(err error) (ServiceError, bool) {
	if serviceErr, ok := err.(ServiceError); ok {
		return serviceErr, true
	}
	return ServiceError{}, false
}

// Common service error constructors
func NewUnauthorizedError(message string) error {
	return ServiceError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewNotFoundError(resource string) error {
	return ServiceError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func NewBadRequestError(message string) error {
	return ServiceError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationError(message string) error {
	return ServiceError{
		Code:       ErrCodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewConflictError(message string) error {
	return ServiceError{
		Code:       "CONFLICT",
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string) error {
	return ServiceError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// Business logic specific errors
func NewInvalidCredentialsError() error {
	return NewUnauthorizedError("Invalid credentials")
}

func NewNotAuthenticatedError() error {
	return NewUnauthorizedError("Not authenticated")
}

func NewUserNotFoundError() error {
	return NewNotFoundError("User")
}

func NewOrderNotFoundError() error {
	return NewNotFoundError("Order")
}

func NewUnknownPlanError(plan string) error {
	return ServiceError{
		Code:       ErrCodeValidation,
		Message:    "Unknown subscription plan",
		Details:    plan,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNoActiveSubscriptionError() error {
	return NewNotFoundError("Active subscription")
}

func NewInvalidTransitionError(from, to string) error {
	return ServiceError{
		Code:       "INVALID_TRANSITION",
		Message:    "Illegal order status transition",
		Details:    fmt.Sprintf("%s -> %s", from, to),
		StatusCode: http.StatusConflict,
	}
}

func NewSOSAlreadyActiveError() error {
	return NewConflictError("An SOS activation is already in progress")
}

func NewEmptyMessageError() error {
	return NewValidationError("Message text or attachments required")
}

func NewAttachmentTooLargeError() error {
	return ServiceError{
		Code:       ErrCodeCapacity,
		Message:    "Attachment exceeds the maximum allowed size",
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

func NewVerificationCodeError() error {
	return NewUnauthorizedError("Invalid verification code")
}

func NewTokenExpiredError() error {
	return NewUnauthorizedError("Token has expired")
}

// Error code constants
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeAuthentication = "AUTHENTICATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeCapacity       = "CAPACITY_ERROR"
	ErrCodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal       = "INTERNAL_ERROR"
)
