// internal/common/errors/http.go
package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPStatus maps an error onto the HTTP status code the API surfaces.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return http.StatusInternalServerError
	}

	switch stdErr.Code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeCatalogUpstream:
		// The client shows a generic retryable error for these.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-visible message for an error.
func Message(err error) string {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Message
	}
	return "internal error"
}

// Code returns the taxonomy code for an error, or ErrCodeInternal.
func Code(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}
