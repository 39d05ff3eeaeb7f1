package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskEvent records one lifecycle transition of a task.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	TaskID   string `json:"task_id"`
	TaskType string `json:"task_type"`

	// Status is the status the task moved to
	Status string `json:"status"`

	// Error carries the failure message for failed transitions
	Error string `json:"error,omitempty"`

	// Duration is the processing time, set on terminal transitions
	Duration time.Duration `json:"duration,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewTaskEvent creates a TaskEvent for the given transition.
func NewTaskEvent(taskID, taskType, status string) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		TaskID:    taskID,
		TaskType:  taskType,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}
