package task

import (
	"encoding/json"
	"time"
)

// Status represents the current state of a task
type Status string

// Possible task status values
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Task is a snapshot of a task record. Values returned by a Store are
// copies; mutating them has no effect on the stored record.
type Task struct {
	ID        string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Result is the JSON-encoded pipeline output, nil until completion.
	Result json.RawMessage

	// Error is the failure message, nil unless the task failed.
	Error *string
}

func (t Task) clone() Task {
	out := t
	if t.Result != nil {
		out.Result = append(json.RawMessage(nil), t.Result...)
	}
	if t.Error != nil {
		msg := *t.Error
		out.Error = &msg
	}
	return out
}
