package task

import "context"

// Job is one detached unit of work bound to a task record. Run returns the
// value stored as the task result; any error, or a panic, fails the task.
type Job interface {
	// TaskID returns the id of the task record the job reports to.
	TaskID() string

	// Type returns the job type used in logs, events and metrics.
	Type() string

	// Run executes the work.
	Run(ctx context.Context) (any, error)
}

// JobFunc adapts a function to the Job interface.
type JobFunc struct {
	ID      string
	JobType string
	Fn      func(ctx context.Context) (any, error)
}

// NewJob creates a Job that runs fn for the given task.
func NewJob(taskID, jobType string, fn func(ctx context.Context) (any, error)) *JobFunc {
	return &JobFunc{ID: taskID, JobType: jobType, Fn: fn}
}

func (j *JobFunc) TaskID() string { return j.ID }

func (j *JobFunc) Type() string { return j.JobType }

func (j *JobFunc) Run(ctx context.Context) (any, error) { return j.Fn(ctx) }
