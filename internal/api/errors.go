package api

import (
	"errors"
	"net/http"

	"github.com/easybiz/easybiz-api/internal/service"
)

// MapErrorToStatusCode maps service errors to HTTP status codes so that
// internal error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnsupportedGenerationType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
// Validation errors keep their field details; everything else is generic.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, service.ErrInvalidRequest):
		return err.Error()
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, service.ErrUnsupportedGenerationType):
		return "Unsupported generation type"
	case errors.Is(err, service.ErrServiceUnavailable):
		return "Service temporarily unavailable, retry later"
	default:
		return "An unexpected error occurred"
	}
}
