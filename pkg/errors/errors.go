package errors

import (
	"context"
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
	ErrNotFound    = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict    = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation  = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal    = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrUpstream    = New("UPSTREAM_UNAVAILABLE", http.StatusBadGateway, "record source unavailable, try again")
	ErrUnavailable = New("CATALOG_UNAVAILABLE", http.StatusServiceUnavailable, "catalog not loaded yet")
	ErrBusy        = New("SERVICE_BUSY", http.StatusServiceUnavailable, "service busy, try again")
	ErrCacheMiss   = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// retryAfter holds the Retry-After hint, in seconds, for transient failures.
var retryAfter = map[string]int{
	ErrUpstream.Code:    30,
	ErrUnavailable.Code: 5,
	ErrBusy.Code:        2,
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrBusy.Code, ErrBusy.Status, ErrBusy.Message)
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// RetryAfter reports how many seconds a client should wait before retrying
// err. The second result is false for failures that retrying will not fix.
func RetryAfter(err error) (int, bool) {
	e := FromError(err)
	if e == nil {
		return 0, false
	}
	seconds, ok := retryAfter[e.Code]
	return seconds, ok
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
