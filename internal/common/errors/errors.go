// Package errors provides the standardized error taxonomy for the search
// and user APIs.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeConflict   ErrorCode = "CONFLICT"

	// Generative-language upstream failures. Recovered locally via the
	// deterministic fallbacks, never surfaced to API callers.
	ErrCodeUpstreamTimeout ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeUpstreamError   ErrorCode = "UPSTREAM_ERROR"

	// Catalog failures have no substitute data source and fail the request.
	ErrCodeCatalogUpstream ErrorCode = "CATALOG_UPSTREAM_ERROR"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates an error for a missing user, survey or username.
func NewNotFoundError(what string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   what + " not found",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConflictError creates an error for a username already taken.
func NewConflictError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConflict,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamTimeoutError creates a retryable generative-API timeout error.
func NewUpstreamTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamTimeout,
		Message:   "Generative API call timed out",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError creates an error for a failed generative-API call.
func NewUpstreamError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamError,
		Message:   "Generative API call failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogUpstreamError creates an error for a failed catalog search call.
func NewCatalogUpstreamError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUpstream,
		Message:   "Product search failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
