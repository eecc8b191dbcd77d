package api

import (
	"errors"
	"fmt"

	"github.com/pawpost/pawpost/internal/models"
)

// Standard JSON-RPC error codes
const (
	ErrParseError     = -32700
	ErrInvalidRequest = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternalError  = -32603
)

// Application error codes
const (
	CodeServerError        = -32000
	CodeDuplicate          = -32001
	CodeInsufficientPoints = -32002
	CodeNotAuthorized      = -32003
	CodeNotFound           = -32004
)

// Error represents an API error
type Error struct {
	Code    int
	Message string
	Data    interface{}
}

// NewError creates a new API error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithData attaches structured data to the error
func (e *Error) WithData(data interface{}) *Error {
	e.Data = data
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// FromDomain maps domain sentinel errors onto API error codes. Anything
// outside the taxonomy is an upstream failure.
func FromDomain(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, models.ErrDuplicate):
		return NewError(CodeDuplicate, "Already done")
	case errors.Is(err, models.ErrInsufficientPoints):
		return NewError(CodeInsufficientPoints, "Insufficient points")
	case errors.Is(err, models.ErrNotAuthorized):
		return NewError(CodeNotAuthorized, "Not authorized")
	case errors.Is(err, models.ErrNotFound):
		return NewError(CodeNotFound, "Not found")
	default:
		return NewError(CodeServerError, "Server error")
	}
}
