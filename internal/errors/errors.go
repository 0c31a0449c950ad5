// Package errors provides coded domain errors for the echo web service.
//
// Usage:
//
//	// In services - return typed errors
//	if category == nil {
//	    return errors.CategoryNotFoundf("category %q not found", slug)
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrCategoryNotFound) {
//	    response.NotFound(w, err.Error(), logger)
//	    return
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeCategoryNotFound   Code = "CATEGORY_NOT_FOUND"
	CodeItemNotFound       Code = "ITEM_NOT_FOUND"
	CodeGatewayUnreachable Code = "GATEWAY_UNREACHABLE"
	CodeGatewayRejected    Code = "GATEWAY_REJECTED"
	CodeValidation         Code = "VALIDATION"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternal           Code = "INTERNAL"
	CodeRender             Code = "RENDER"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeCategoryNotFound, CodeItemNotFound:
		return http.StatusNotFound
	case CodeGatewayUnreachable:
		return http.StatusBadGateway
	case CodeGatewayRejected:
		return http.StatusUnprocessableEntity
	case CodeValidation:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound reports whether the code is one of the not-found family.
func (c Code) IsNotFound() bool {
	return c == CodeNotFound || c == CodeCategoryNotFound || c == CodeItemNotFound
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// GetStatus lets HTTP frameworks that look for a status method (huma.StatusError) pick up the
// code's status when a handler returns the error directly.
func (e *Error) GetStatus() int {
	return e.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrCategoryNotFound   = &Error{Code: CodeCategoryNotFound, Message: "category not found"}
	ErrItemNotFound       = &Error{Code: CodeItemNotFound, Message: "item not found"}
	ErrGatewayUnreachable = &Error{Code: CodeGatewayUnreachable, Message: "failed to load"}
	ErrGatewayRejected    = &Error{Code: CodeGatewayRejected, Message: "request rejected"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
	ErrRender             = &Error{Code: CodeRender, Message: "something went wrong"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// CategoryNotFoundf creates a category not found error with formatted message.
func CategoryNotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeCategoryNotFound, Message: fmt.Sprintf(format, args...)}
}

// ItemNotFoundf creates an item not found error with formatted message.
func ItemNotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeItemNotFound, Message: fmt.Sprintf(format, args...)}
}

// GatewayUnreachable creates an error for a transport-level gateway failure.
func GatewayUnreachable(msg string, cause error) *Error {
	return &Error{Code: CodeGatewayUnreachable, Message: msg, cause: cause}
}

// GatewayRejected creates an error for a gateway response with success=false.
func GatewayRejected(msg string, cause error) *Error {
	return &Error{Code: CodeGatewayRejected, Message: msg, cause: cause}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// CodeOf returns the code carried by err, or CodeInternal when err is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
