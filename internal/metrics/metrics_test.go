package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/easybiz/easybiz-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_HandleEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	ctx := context.Background()

	require.NoError(t, r.HandleEvent(ctx, events.NewTaskEvent("t1", "brand_kit", "pending")))
	require.NoError(t, r.HandleEvent(ctx, events.NewTaskEvent("t1", "brand_kit", "processing")))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.tasksSubmitted.WithLabelValues("brand_kit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tasksRunning.WithLabelValues("brand_kit")))

	done := events.NewTaskEvent("t1", "brand_kit", "completed")
	done.Duration = 3 * time.Second
	require.NoError(t, r.HandleEvent(ctx, done))

	assert.Equal(t, 0.0, testutil.ToFloat64(r.tasksRunning.WithLabelValues("brand_kit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tasksFinished.WithLabelValues("brand_kit", "completed")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.taskDuration))
}

func TestRecorder_ObserveProviderCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveProviderCall("openai", "text", 200*time.Millisecond, nil)
	r.ObserveProviderCall("openai", "text", time.Second, errors.New("boom"))
	r.ObserveProviderCall("gemini", "image", time.Second, nil)

	expected := `
# HELP easybiz_provider_calls_total Total number of AI provider calls
# TYPE easybiz_provider_calls_total counter
easybiz_provider_calls_total{operation="image",provider="gemini",result="success"} 1
easybiz_provider_calls_total{operation="text",provider="openai",result="error"} 1
easybiz_provider_calls_total{operation="text",provider="openai",result="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "easybiz_provider_calls_total"))
}

func TestNewRecorder_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
