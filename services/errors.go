package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeUnavailable  ErrorType = "unavailable"
	ErrorTypeInternal     ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail returns a copy of the error with an additional detail.
// The package-level sentinels are shared, so they are never mutated.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Type: e.Type, Message: e.Message, Err: e.Err, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Not Found Errors
	ErrRoleNotFound       = NewDomainError(ErrorTypeNotFound, "role not found", nil)
	ErrAuditTrailDisabled = NewDomainError(ErrorTypeNotFound, "access audit trail is not enabled", nil)

	// Validation Errors
	ErrInvalidInput = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrEmptyCheck   = NewDomainError(ErrorTypeValidation, "at least one of permission, menu or feature is required", nil)

	// Authentication Errors
	ErrUnauthorized = NewDomainError(ErrorTypeUnauthorized, "missing or invalid authorization", nil)
	ErrInvalidToken = NewDomainError(ErrorTypeUnauthorized, "invalid or expired token", nil)

	// Permission Errors
	ErrInsufficientPermissions = NewDomainError(ErrorTypeForbidden, "insufficient permissions", nil)
	ErrInvalidRole             = NewDomainError(ErrorTypeForbidden, "role is not recognized", nil)

	// Availability Errors
	ErrAuditBufferFull = NewDomainError(ErrorTypeUnavailable, "audit buffer full", nil)

	// Internal Errors
	ErrInternal = NewDomainError(ErrorTypeInternal, "internal server error", nil)
)

// Error type checking helper functions

func hasType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool { return hasType(err, ErrorTypeNotFound) }

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return hasType(err, ErrorTypeValidation) }

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool { return hasType(err, ErrorTypeUnauthorized) }

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool { return hasType(err, ErrorTypeForbidden) }

// IsUnavailableError checks if an error is a temporary unavailability
func IsUnavailableError(err error) bool { return hasType(err, ErrorTypeUnavailable) }

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool { return hasType(err, ErrorTypeInternal) }

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
