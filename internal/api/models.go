package api

import (
	"encoding/json"
	"time"

	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/easybiz/easybiz-api/internal/provider"
	"github.com/easybiz/easybiz-api/internal/task"
)

// GenerateRequest defines the payload of the generation endpoints. On the
// typed routes the generation type comes from the path and the body value
// is ignored.
type GenerateRequest struct {
	ProjectID      string                    `json:"project_id"`
	GenerationType generation.GenerationType `json:"generation_type"`
	Prompts        generation.PromptContext  `json:"prompts"`
	Options        map[string]any            `json:"options,omitempty"`
}

func (r GenerateRequest) toGeneration() generation.Request {
	return generation.Request{
		ProjectID:      r.ProjectID,
		GenerationType: r.GenerationType,
		Prompts:        r.Prompts,
		Options:        r.Options,
	}
}

// TaskResponse describes a task. Result and Error are null until the task
// reaches a terminal state.
type TaskResponse struct {
	TaskID    string          `json:"task_id"`
	Status    task.Status     `json:"status"`
	Result    json.RawMessage `json:"result"`
	Error     *string         `json:"error"`
	CreatedAt time.Time       `json:"created_at"`
}

// SubmitResponse is returned when a generation task was accepted.
type SubmitResponse struct {
	TaskID    string      `json:"task_id"`
	Status    task.Status `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status            string              `json:"status"`
	Timestamp         time.Time           `json:"timestamp"`
	Version           string              `json:"version"`
	AvailableServices provider.Services   `json:"available_services"`
	Tasks             map[task.Status]int `json:"tasks"`
}

// RootResponse is returned by the root endpoint.
type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func taskToResponse(t task.Task) TaskResponse {
	return TaskResponse{
		TaskID:    t.ID,
		Status:    t.Status,
		Result:    t.Result,
		Error:     t.Error,
		CreatedAt: t.CreatedAt,
	}
}
