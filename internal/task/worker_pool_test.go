package task

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool(t *testing.T) {
	logger := setupTestLogger()
	queue := NewQueue(1, logger)

	tests := []struct {
		name     string
		count    int
		expected int
	}{
		{name: "positive count", count: 4, expected: 4},
		{name: "zero count", count: 0, expected: 1},
		{name: "negative count", count: -3, expected: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: tc.count}, logger)
			assert.Equal(t, tc.expected, pool.workerCount)
		})
	}
}

func TestWorkerPool_ProcessesAllJobs(t *testing.T) {
	logger := setupTestLogger()
	queue := NewQueue(100, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 4}, logger)

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	pool.Start(func(job Job) {
		mu.Lock()
		seen[job.TaskID()] = true
		mu.Unlock()
	})

	for i := 0; i < 50; i++ {
		require.NoError(t, queue.Enqueue(newTestJob(strconv.Itoa(i))))
	}
	queue.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.Wait(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 50)
}

func TestWorkerPool_RunsJobsConcurrently(t *testing.T) {
	logger := setupTestLogger()
	queue := NewQueue(10, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 3}, logger)

	var running, peak int32
	release := make(chan struct{})
	pool.Start(func(Job) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&running, -1)
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, queue.Enqueue(newTestJob(strconv.Itoa(i))))
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&peak) == 3
	}, 2*time.Second, 5*time.Millisecond)

	close(release)
	queue.Close()
	require.NoError(t, pool.Wait(context.Background()))
}

func TestWorkerPool_WaitHonoursContext(t *testing.T) {
	logger := setupTestLogger()
	queue := NewQueue(1, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, logger)

	block := make(chan struct{})
	pool.Start(func(Job) { <-block })
	require.NoError(t, queue.Enqueue(newTestJob("slow")))
	queue.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	assert.NoError(t, pool.Wait(context.Background()))
}
