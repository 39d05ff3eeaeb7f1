package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/easybiz/easybiz-api/internal/events"
	"github.com/easybiz/easybiz-api/internal/redact"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many jobs run concurrently
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int
}

// Runner executes jobs detached from their callers and records every
// lifecycle transition in the Store. It is the single failure boundary of
// a job: whatever escapes Job.Run, including a panic, ends as a failed task.
type Runner struct {
	store   Store
	queue   *Queue
	pool    *WorkerPool
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewRunner creates a Runner. emitter may be nil.
func NewRunner(store Store, config RunnerConfig, emitter events.EventEmitter, logger *slog.Logger) *Runner {
	logger = logger.With("component", "task_runner")
	queue := NewQueue(config.QueueSize, logger)

	return &Runner{
		store:   store,
		queue:   queue,
		pool:    NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger),
		emitter: emitter,
		logger:  logger,
	}
}

// Start begins processing queued jobs.
func (r *Runner) Start() {
	r.pool.Start(r.process)
}

// Submit hands a job to the workers without blocking. The job's task must
// already exist in the store.
func (r *Runner) Submit(ctx context.Context, job Job) error {
	if err := r.queue.Enqueue(job); err != nil {
		return err
	}
	r.emit(ctx, events.NewTaskEvent(job.TaskID(), job.Type(), string(StatusPending)))
	return nil
}

// Stop refuses new jobs and waits until queued and running jobs finish or
// ctx is done.
func (r *Runner) Stop(ctx context.Context) error {
	r.queue.Close()
	if err := r.pool.Wait(ctx); err != nil {
		r.logger.Warn("task runner stopped before draining", "error", err, "remaining", r.queue.Len())
		return err
	}
	r.logger.Info("task runner stopped")
	return nil
}

// process handles execution of a single job
func (r *Runner) process(job Job) {
	// Jobs are detached from the request that created them and are never cancelled.
	ctx := context.Background()
	logger := r.logger.With("task_id", job.TaskID(), "task_type", job.Type())

	if err := r.store.Update(job.TaskID(), StatusProcessing, nil, ""); err != nil {
		logger.Error("failed to update task status to processing", "error", err)
		return
	}
	r.emit(ctx, events.NewTaskEvent(job.TaskID(), job.Type(), string(StatusProcessing)))
	logger.Info("processing task")

	start := time.Now()
	result, err := r.execute(ctx, job)
	elapsed := time.Since(start)

	if err != nil {
		msg := redact.Error(err)
		logger.Error("task execution failed", "error", msg, "duration_ms", elapsed.Milliseconds())
		r.finish(ctx, job, StatusFailed, nil, msg, elapsed)
		return
	}

	logger.Info("task completed successfully", "duration_ms", elapsed.Milliseconds())
	r.finish(ctx, job, StatusCompleted, result, "", elapsed)
}

// execute runs the job and encodes its result, converting panics into errors.
func (r *Runner) execute(ctx context.Context, job Job) (encoded json.RawMessage, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("task panicked",
				"task_id", job.TaskID(),
				"panic", fmt.Sprint(p),
				"stack", string(debug.Stack()))
			encoded = nil
			err = fmt.Errorf("%w: panic: %v", ErrPipelineFailure, p)
		}
	}()

	result, err := job.Run(ctx)
	if err != nil {
		if err.Error() == "" {
			err = fmt.Errorf("%w: %T with empty message", ErrPipelineFailure, err)
		}
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: job returned no result", ErrPipelineFailure)
	}

	encoded, err = json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding result: %v", ErrPipelineFailure, err)
	}
	return encoded, nil
}

func (r *Runner) finish(
	ctx context.Context,
	job Job,
	status Status,
	result json.RawMessage,
	errMsg string,
	elapsed time.Duration,
) {
	if err := r.store.Update(job.TaskID(), status, result, errMsg); err != nil {
		level := slog.LevelError
		if errors.Is(err, ErrTaskFinalized) {
			level = slog.LevelWarn
		}
		r.logger.Log(ctx, level, "failed to record terminal task status",
			"task_id", job.TaskID(),
			"status", status,
			"error", err)
		return
	}

	event := events.NewTaskEvent(job.TaskID(), job.Type(), string(status))
	event.Error = errMsg
	event.Duration = elapsed
	r.emit(ctx, event)
}

func (r *Runner) emit(ctx context.Context, event *events.TaskEvent) {
	if r.emitter == nil {
		return
	}
	if err := r.emitter.EmitEvent(ctx, event); err != nil {
		r.logger.Warn("failed to emit task event",
			"task_id", event.TaskID,
			"status", event.Status,
			"error", err)
	}
}
