// Package metrics exposes Prometheus metrics for task lifecycle events and
// AI provider calls.
package metrics

import (
	"context"
	"time"

	"github.com/easybiz/easybiz-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "easybiz"

// Task statuses as carried by events.TaskEvent.Status.
const (
	statusPending    = "pending"
	statusProcessing = "processing"
)

// Recorder holds all Prometheus metrics. It is an events.EventHandler for
// task transitions and a provider.CallObserver for backend calls.
type Recorder struct {
	tasksSubmitted *prometheus.CounterVec
	tasksFinished  *prometheus.CounterVec
	tasksRunning   *prometheus.GaugeVec
	taskDuration   *prometheus.HistogramVec

	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

var _ events.EventHandler = (*Recorder)(nil)

// NewRecorder creates the metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		tasksSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_submitted_total",
				Help:      "Total number of generation tasks accepted",
			},
			[]string{"type"},
		),
		tasksFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_finished_total",
				Help:      "Total number of generation tasks that reached a terminal state",
			},
			[]string{"type", "status"},
		),
		tasksRunning: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "tasks_running",
				Help:      "Current number of generation tasks being processed",
			},
			[]string{"type"},
		),
		taskDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "task_duration_seconds",
				Help:      "Generation task execution duration in seconds",
				Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"type"},
		),
		providerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_calls_total",
				Help:      "Total number of AI provider calls",
			},
			[]string{"provider", "operation", "result"},
		),
		providerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "AI provider call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
	}

	reg.MustRegister(
		r.tasksSubmitted,
		r.tasksFinished,
		r.tasksRunning,
		r.taskDuration,
		r.providerCalls,
		r.providerDuration,
	)

	return r
}

// HandleEvent updates task metrics for one lifecycle transition.
func (r *Recorder) HandleEvent(_ context.Context, event *events.TaskEvent) error {
	switch event.Status {
	case statusPending:
		r.tasksSubmitted.WithLabelValues(event.TaskType).Inc()
	case statusProcessing:
		r.tasksRunning.WithLabelValues(event.TaskType).Inc()
	default:
		r.tasksRunning.WithLabelValues(event.TaskType).Dec()
		r.tasksFinished.WithLabelValues(event.TaskType, event.Status).Inc()
		r.taskDuration.WithLabelValues(event.TaskType).Observe(event.Duration.Seconds())
	}
	return nil
}

// ObserveProviderCall records the outcome and latency of one backend call.
func (r *Recorder) ObserveProviderCall(provider, operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.providerCalls.WithLabelValues(provider, operation, result).Inc()
	r.providerDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}
