package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrNoProviderAvailable is returned when no backend is configured for the
	// requested capability (text or image).
	ErrNoProviderAvailable = errors.New("no provider available")

	// ErrProvider is the sentinel matched by every *ProviderError.
	ErrProvider = errors.New("provider call failed")

	// ErrInvalidResponse is returned when a backend answers with nothing usable
	ErrInvalidResponse = errors.New("invalid response from provider")

	// ErrContentBlocked is returned when the backend blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by provider safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient provider failure")

	// ErrInvalidConfig is returned when a backend configuration is invalid
	ErrInvalidConfig = errors.New("invalid provider configuration")
)

// ProviderError wraps a failure returned by a concrete backend together with
// the backend name and the operation that was attempted.
type ProviderError struct {
	Provider  string
	Operation string
	Err       error
}

// NewProviderError builds a ProviderError for the given backend and operation.
func NewProviderError(provider, operation string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Operation: operation, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s generation failed (%s): %v", e.Operation, e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrProvider) true for any ProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}
