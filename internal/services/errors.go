// Package services provides the business logic layer between handlers and
// the analytics packages. Services apply configured defaults, validate input
// and translate failures into ServiceError codes.
package services

import "errors"

// Error codes returned by the services
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeInvalidAlgorithm = "INVALID_ALGORITHM"
	CodeSeriesTooShort   = "SERIES_TOO_SHORT"
	CodeDetectionFailed  = "DETECTION_FAILED"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	cause   error
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// wrapServiceError creates a ServiceError whose message is the cause's message
func wrapServiceError(code string, cause error, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: cause.Error(),
		Details: details,
		cause:   cause,
	}
}

// AsServiceError extracts a ServiceError from err
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
