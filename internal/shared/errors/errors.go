package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConflict indicates a conflict with existing data
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeConstraint indicates a uniqueness or foreign key violation reported by the store
	ErrorTypeConstraint ErrorType = "constraint"
	// ErrorTypeMalformed indicates a missing or unreadable request body
	ErrorTypeMalformed ErrorType = "malformed"
	// ErrorTypeApplication is a handler-raised error carrying its own status code
	ErrorTypeApplication ErrorType = "application"
	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeMethodNotAllowed indicates an unsupported HTTP method
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
)

// AppError is the base error type for application errors
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	// Status is only consulted for ErrorTypeApplication.
	Status int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a not found error
func NotFound(message string) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// Conflict creates a conflict error
func Conflict(message string) error {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// WrapConstraint wraps a store constraint violation
func WrapConstraint(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeConstraint,
		Message: message,
		Err:     err,
	}
}

// Malformed creates a malformed request error
func Malformed(message string) error {
	return &AppError{
		Type:    ErrorTypeMalformed,
		Message: message,
	}
}

// WrapMalformed wraps a decoding error as a malformed request error
func WrapMalformed(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeMalformed,
		Message: message,
		Err:     err,
	}
}

// Application creates an error that is rendered with the given status code
func Application(status int, message string) error {
	return &AppError{
		Type:    ErrorTypeApplication,
		Message: message,
		Status:  status,
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// Internalf creates an internal error with formatting
func Internalf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// MethodNotAllowed creates a method not allowed error
func MethodNotAllowed(method string) error {
	return &AppError{
		Type:    ErrorTypeMethodNotAllowed,
		Message: fmt.Sprintf("method %s not allowed", method),
	}
}

// GetType returns the error type of an error
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// As returns the outermost AppError in the chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
