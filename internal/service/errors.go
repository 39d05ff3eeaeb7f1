package service

import "errors"

// Common service errors
var (
	// ErrTaskNotFound is returned when the requested task id is not registered.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUnsupportedGenerationType is returned when no pipeline handles the
	// requested generation type.
	ErrUnsupportedGenerationType = errors.New("unsupported generation type")

	// ErrInvalidRequest is returned when a generation request fails validation.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrServiceUnavailable is returned when the task runner refuses new work
	// (queue full or shutting down).
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

// ContentServiceError wraps an error raised by a ContentService operation.
type ContentServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *ContentServiceError) Error() string {
	if e.Err != nil {
		return "content service " + e.Operation + " failed: " + e.Message + ": " + e.Err.Error()
	}
	return "content service " + e.Operation + " failed: " + e.Message
}

func (e *ContentServiceError) Unwrap() error {
	return e.Err
}

// NewContentServiceError creates a ContentServiceError.
func NewContentServiceError(operation, message string, err error) *ContentServiceError {
	return &ContentServiceError{Operation: operation, Message: message, Err: err}
}
