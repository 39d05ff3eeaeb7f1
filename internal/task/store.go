package task

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the task registry. Implementations must be safe for concurrent use.
type Store interface {
	// Create registers a new pending task and returns its snapshot. It never fails.
	Create() Task

	// Update replaces status, result and error of the task in one write.
	// Unknown ids are ignored and return nil.
	Update(id string, status Status, result json.RawMessage, errMsg string) error

	// Get returns a snapshot of the task; false means the id is unknown.
	Get(id string) (Task, bool)
}

// MemoryStore is a process-lifetime Store backed by a mutex-guarded map.
// Records are never evicted.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	now   func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*Task),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a new pending task.
func (s *MemoryStore) Create() Task {
	now := s.now()
	t := &Task{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()

	return t.clone()
}

// Update writes the full state of a task.
//
// The write is rejected with ErrTaskFinalized once the task is terminal, and
// with ErrInvalidUpdate when a completed task has no result, a failed task has
// no error message, or a non-terminal task carries either.
func (s *MemoryStore) Update(id string, status Status, result json.RawMessage, errMsg string) error {
	if err := validateUpdate(status, result, errMsg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil
	}
	if t.Status.IsTerminal() {
		return fmt.Errorf("%w: task %s is %s", ErrTaskFinalized, id, t.Status)
	}

	t.Status = status
	t.UpdatedAt = s.now()
	t.Result = nil
	t.Error = nil
	if result != nil {
		t.Result = append(json.RawMessage(nil), result...)
	}
	if errMsg != "" {
		msg := errMsg
		t.Error = &msg
	}
	return nil
}

// Get returns a copy of the task.
func (s *MemoryStore) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

// Counts returns the number of tasks per status.
func (s *MemoryStore) Counts() map[Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[Status]int{
		StatusPending:    0,
		StatusProcessing: 0,
		StatusCompleted:  0,
		StatusFailed:     0,
	}
	for _, t := range s.tasks {
		counts[t.Status]++
	}
	return counts
}

func validateUpdate(status Status, result json.RawMessage, errMsg string) error {
	switch {
	case !status.IsValid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidUpdate, status)
	case status == StatusCompleted && (result == nil || errMsg != ""):
		return fmt.Errorf("%w: completed task needs a result and no error", ErrInvalidUpdate)
	case status == StatusFailed && (errMsg == "" || result != nil):
		return fmt.Errorf("%w: failed task needs an error and no result", ErrInvalidUpdate)
	case !status.IsTerminal() && (result != nil || errMsg != ""):
		return fmt.Errorf("%w: %s task cannot carry a result or error", ErrInvalidUpdate, status)
	}
	return nil
}
