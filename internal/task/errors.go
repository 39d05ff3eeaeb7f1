package task

import "errors"

// Common errors returned by the task package
var (
	// ErrTaskFinalized is returned by Update when the task already reached a terminal state.
	ErrTaskFinalized = errors.New("task already in terminal state")

	// ErrInvalidUpdate is returned by Update when the requested state breaks the
	// result/error invariant or names an unknown status.
	ErrInvalidUpdate = errors.New("invalid task update")

	// ErrPipelineFailure wraps failures raised at the runner boundary itself:
	// panics inside a job and results that cannot be encoded.
	ErrPipelineFailure = errors.New("pipeline failure")

	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)
