// Package errors provides application-level error types and utilities.
// An AppError knows the HTTP status it maps to and the message that is safe
// to show to the caller.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation_error"
	ErrorTypeBadRequest       ErrorType = "bad_request"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypeTooManyRequests  ErrorType = "too_many_requests"
	ErrorTypePayloadTooLarge  ErrorType = "payload_too_large"
	ErrorTypeConfiguration    ErrorType = "configuration_error"
	ErrorTypeDispatch         ErrorType = "dispatch_error"
	ErrorTypeInternal         ErrorType = "internal_error"
)

// AppError represents an application error with additional context.
// Details and Cause are for logs only and never reach the caller.
type AppError struct {
	Type          ErrorType
	Message       string
	Code          int
	Details       string
	MissingFields []string
	Cause         error
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewMissingFieldsError reports required fields that were absent or blank.
func NewMissingFieldsError(message string, fields []string) *AppError {
	err := newAppError(ErrorTypeValidation, http.StatusBadRequest, message, nil)
	err.MissingFields = fields
	return err
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewMethodNotAllowedError(message string) *AppError {
	return newAppError(ErrorTypeMethodNotAllowed, http.StatusMethodNotAllowed, message, nil)
}

func NewTooManyRequestsError(message string) *AppError {
	return newAppError(ErrorTypeTooManyRequests, http.StatusTooManyRequests, message, nil)
}

func NewPayloadTooLargeError(message string) *AppError {
	return newAppError(ErrorTypePayloadTooLarge, http.StatusRequestEntityTooLarge, message, nil)
}

// NewConfigurationError signals a deployment problem. The caller only sees
// message; details name what is missing for the operator log.
func NewConfigurationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConfiguration, http.StatusInternalServerError, message, details)
}

// NewDispatchError wraps a transport failure behind an opaque message.
func NewDispatchError(message string, cause error) *AppError {
	err := newAppError(ErrorTypeDispatch, http.StatusInternalServerError, message, nil)
	err.Cause = cause
	return err
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}

func IsDispatchError(err error) bool {
	return isType(err, ErrorTypeDispatch)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}
