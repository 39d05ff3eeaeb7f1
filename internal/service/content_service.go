package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"strings"

	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/easybiz/easybiz-api/internal/pipeline"
	"github.com/easybiz/easybiz-api/internal/provider"
	"github.com/easybiz/easybiz-api/internal/redact"
	"github.com/easybiz/easybiz-api/internal/task"
	"github.com/go-playground/validator/v10"
)

// TaskRunner defines the interface for submitting detached jobs
type TaskRunner interface {
	// Submit enqueues the job without blocking; it fails when the queue is
	// full or closed.
	Submit(ctx context.Context, job task.Job) error
}

// TaskStore is the task registry the service reads and writes.
type TaskStore interface {
	task.Store

	// Counts returns the number of tasks per status.
	Counts() map[task.Status]int
}

// PipelineRegistry resolves the pipeline for a generation type.
type PipelineRegistry interface {
	Get(t generation.GenerationType) (pipeline.Pipeline, bool)
}

// ServiceReporter reports which generation services are configured.
type ServiceReporter interface {
	AvailableServices() provider.Services
}

// ContentService provides the content generation use cases.
type ContentService interface {
	// Submit validates the request, registers a pending task and starts the
	// pipeline run in the background. The returned snapshot is PENDING.
	Submit(ctx context.Context, req generation.Request) (task.Task, error)

	// GetTask returns the current snapshot of a task or ErrTaskNotFound.
	GetTask(ctx context.Context, id string) (task.Task, error)

	// AvailableServices reports the configured generation capabilities.
	AvailableServices() provider.Services

	// TaskCounts returns the number of tasks per status.
	TaskCounts() map[task.Status]int
}

// contentServiceImpl implements ContentService
type contentServiceImpl struct {
	store     TaskStore
	runner    TaskRunner
	pipelines PipelineRegistry
	services  ServiceReporter
	validate  *validator.Validate
	logger    *slog.Logger
}

var _ ContentService = (*contentServiceImpl)(nil)

// NewContentService creates a new ContentService.
// It returns an error if any required dependency is nil.
func NewContentService(
	store TaskStore,
	runner TaskRunner,
	pipelines PipelineRegistry,
	services ServiceReporter,
	logger *slog.Logger,
) (ContentService, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if pipelines == nil {
		return nil, fmt.Errorf("pipelines cannot be nil")
	}
	if services == nil {
		return nil, fmt.Errorf("services cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &contentServiceImpl{
		store:     store,
		runner:    runner,
		pipelines: pipelines,
		services:  services,
		validate:  newRequestValidator(),
		logger:    logger.With("component", "content_service"),
	}, nil
}

// newRequestValidator reports field errors under their JSON names.
func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Submit implements ContentService.Submit
func (s *contentServiceImpl) Submit(ctx context.Context, req generation.Request) (task.Task, error) {
	log := s.logger

	if err := s.validateRequest(req); err != nil {
		log.Debug("rejected generation request",
			"project_id", req.ProjectID,
			"generation_type", req.GenerationType,
			"error", err)
		return task.Task{}, err
	}

	p, ok := s.pipelines.Get(req.GenerationType)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrUnsupportedGenerationType, req.GenerationType)
	}

	// The pipeline owns its own copy so later changes by the caller cannot
	// reach the running job.
	owned := generation.Request{
		ProjectID:      req.ProjectID,
		GenerationType: req.GenerationType,
		Prompts:        req.Prompts.Merge(nil),
		Options:        maps.Clone(req.Options),
	}

	t := s.store.Create()
	job := task.NewJob(t.ID, string(owned.GenerationType), func(ctx context.Context) (any, error) {
		return p.Run(ctx, owned)
	})

	if err := s.runner.Submit(ctx, job); err != nil {
		msg := redact.Error(err)
		if updateErr := s.store.Update(t.ID, task.StatusFailed, nil, msg); updateErr != nil {
			log.Error("failed to mark rejected task as failed",
				"task_id", t.ID,
				"error", updateErr)
		}
		log.Warn("task runner refused job",
			"task_id", t.ID,
			"generation_type", owned.GenerationType,
			"error", msg)
		return task.Task{}, NewContentServiceError("submit", "task could not be queued",
			fmt.Errorf("%w: %w", ErrServiceUnavailable, err))
	}

	log.Info("generation task submitted",
		"task_id", t.ID,
		"project_id", owned.ProjectID,
		"generation_type", owned.GenerationType)

	return t, nil
}

// validateRequest maps validator failures onto the service sentinels.
func (s *contentServiceImpl) validateRequest(req generation.Request) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Field() == "generation_type" && fe.Tag() == "oneof" {
			return fmt.Errorf("%w: %v", ErrUnsupportedGenerationType, fe.Value())
		}
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// GetTask implements ContentService.GetTask
func (s *contentServiceImpl) GetTask(ctx context.Context, id string) (task.Task, error) {
	t, ok := s.store.Get(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t, nil
}

// AvailableServices implements ContentService.AvailableServices
func (s *contentServiceImpl) AvailableServices() provider.Services {
	return s.services.AvailableServices()
}

// TaskCounts implements ContentService.TaskCounts
func (s *contentServiceImpl) TaskCounts() map[task.Status]int {
	return s.store.Counts()
}
