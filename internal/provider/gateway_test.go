package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeText struct {
	name   string
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeText) Name() string { return f.name }

func (f *fakeText) GenerateText(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

type fakeImage struct {
	name        string
	url         string
	err         error
	calls       int
	description string
	style       string
}

func (f *fakeImage) Name() string { return f.name }

func (f *fakeImage) GenerateImage(_ context.Context, description, style string) (string, error) {
	f.calls++
	f.description = description
	f.style = style
	return f.url, f.err
}

type observedCall struct {
	provider  string
	operation string
	err       error
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observedCall
}

func (r *recordingObserver) ObserveProviderCall(provider, operation string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, observedCall{provider, operation, err})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGateway_NoBackends(t *testing.T) {
	g := NewGateway(nil, nil, discardLogger())

	_, err := g.GenerateText(context.Background(), "hello", generation.PromptContext{})
	assert.ErrorIs(t, err, generation.ErrNoProviderAvailable)

	_, err = g.GenerateImage(context.Background(), "logo", "modern")
	assert.ErrorIs(t, err, generation.ErrNoProviderAvailable)

	assert.False(t, g.CanGenerateImages())
	assert.Equal(t, Services{}, g.AvailableServices())
}

func TestGateway_GenerateText_StructuredResponse(t *testing.T) {
	backend := &fakeText{name: NameOpenAI, reply: `{"a": 1}`}
	g := NewGateway([]TextBackend{backend}, nil, discardLogger())

	content, err := g.GenerateText(context.Background(), "make a plan", generation.PromptContext{
		BusinessName: "Acme",
		Industry:     "Retail",
	})
	require.NoError(t, err)

	assert.Equal(t, generation.Content{"a": float64(1)}, content)
	assert.Contains(t, backend.prompt, "- Name: Acme")
	assert.Contains(t, backend.prompt, "- Industry: Retail")
	assert.Contains(t, backend.prompt, "- Tone: professional")
	assert.Contains(t, backend.prompt, "\n\nUser Request: make a plan")
}

func TestGateway_GenerateText_PlainResponse(t *testing.T) {
	backend := &fakeText{name: NameClaude, reply: "Hello there"}
	g := NewGateway([]TextBackend{backend}, nil, discardLogger())

	content, err := g.GenerateText(context.Background(), "greet", generation.PromptContext{})
	require.NoError(t, err)

	assert.Equal(t, generation.Content{"content": "Hello there", "type": "text_response"}, content)
}

func TestGateway_TextPriority(t *testing.T) {
	tests := []struct {
		name     string
		backends []string
		expected string
	}{
		{name: "all configured", backends: []string{NameGemini, NameClaude, NameOpenAI}, expected: NameOpenAI},
		{name: "claude and gemini", backends: []string{NameGemini, NameClaude}, expected: NameClaude},
		{name: "gemini only", backends: []string{NameGemini}, expected: NameGemini},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fakes := make(map[string]*fakeText)
			var backends []TextBackend
			for _, name := range tc.backends {
				f := &fakeText{name: name, reply: `{"from":"` + name + `"}`}
				fakes[name] = f
				backends = append(backends, f)
			}
			g := NewGateway(backends, nil, discardLogger())

			content, err := g.GenerateText(context.Background(), "x", generation.PromptContext{})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, content["from"])

			for name, f := range fakes {
				if name == tc.expected {
					assert.Equal(t, 1, f.calls)
				} else {
					assert.Zero(t, f.calls, "%s must not be called", name)
				}
			}
		})
	}
}

func TestGateway_TextFailureDoesNotFallThrough(t *testing.T) {
	boom := errors.New("upstream 500")
	openai := &fakeText{name: NameOpenAI, err: boom}
	gemini := &fakeText{name: NameGemini, reply: `{"ok":true}`}
	observer := &recordingObserver{}
	g := NewGateway([]TextBackend{openai, gemini}, nil, discardLogger(), WithObserver(observer))

	_, err := g.GenerateText(context.Background(), "x", generation.PromptContext{})

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProvider)
	assert.ErrorIs(t, err, boom)
	var perr *generation.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, NameOpenAI, perr.Provider)
	assert.Equal(t, "text generation failed (openai): upstream 500", err.Error())
	assert.Zero(t, gemini.calls)

	require.Len(t, observer.calls, 1)
	assert.Equal(t, observedCall{NameOpenAI, OperationText, boom}, observer.calls[0])
}

func TestGateway_GenerateImage(t *testing.T) {
	openai := &fakeImage{name: NameOpenAI, url: "https://img/openai.png"}
	gemini := &fakeImage{name: NameGemini, url: "data:image/png;base64,AA=="}
	g := NewGateway(nil, []ImageBackend{gemini, openai}, discardLogger())

	img, err := g.GenerateImage(context.Background(), "a bakery logo", "")
	require.NoError(t, err)

	assert.Equal(t, generation.Image{
		ImageURL:    "https://img/openai.png",
		Description: "a bakery logo",
		Style:       "professional",
	}, img)
	assert.Equal(t, "professional", openai.style)
	assert.Zero(t, gemini.calls)
	assert.True(t, g.CanGenerateImages())
}

func TestGateway_GenerateImage_Failure(t *testing.T) {
	boom := errors.New("quota")
	g := NewGateway(nil, []ImageBackend{&fakeImage{name: NameGemini, err: boom}}, discardLogger())

	_, err := g.GenerateImage(context.Background(), "logo", "modern")
	var perr *generation.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, NameGemini, perr.Provider)
	assert.Equal(t, OperationImage, perr.Operation)
	assert.ErrorIs(t, err, boom)
}

func TestGateway_Capabilities(t *testing.T) {
	g := NewGateway(
		[]TextBackend{&fakeText{name: NameClaude}, &fakeText{name: NameGemini}},
		[]ImageBackend{&fakeImage{name: NameGemini}},
		discardLogger(),
	)

	assert.Equal(t, Capabilities{ClaudeText: true, GeminiText: true, GeminiImage: true}, g.Capabilities())
	assert.Equal(t, Services{
		TextGeneration:  true,
		ImageGeneration: true,
		ModelsAvailable: g.Capabilities(),
	}, g.AvailableServices())
}

func TestGateway_SkipsNilBackends(t *testing.T) {
	g := NewGateway([]TextBackend{nil}, []ImageBackend{nil}, discardLogger())
	assert.False(t, g.AvailableServices().TextGeneration)
	assert.False(t, g.CanGenerateImages())
}

// hangingText blocks until the call context ends.
type hangingText struct{ name string }

func (h hangingText) Name() string { return h.name }

func (h hangingText) GenerateText(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type hangingImage struct{ name string }

func (h hangingImage) Name() string { return h.name }

func (h hangingImage) GenerateImage(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGateway_RequestTimeoutBoundsHungBackend(t *testing.T) {
	observer := &recordingObserver{}
	g := NewGateway(
		[]TextBackend{hangingText{name: NameClaude}},
		[]ImageBackend{hangingImage{name: NameOpenAI}},
		discardLogger(),
		WithObserver(observer),
		WithRequestTimeout(50*time.Millisecond),
	)

	start := time.Now()
	_, err := g.GenerateText(context.Background(), "x", generation.PromptContext{})
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, err, generation.ErrProvider)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = g.GenerateImage(context.Background(), "logo", "modern")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.Len(t, observer.calls, 2)
	assert.ErrorIs(t, observer.calls[0].err, context.DeadlineExceeded)
}

func TestGateway_NoRequestTimeoutKeepsCallerDeadline(t *testing.T) {
	g := NewGateway([]TextBackend{hangingText{name: NameGemini}}, nil, discardLogger(), WithRequestTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.GenerateText(ctx, "x", generation.PromptContext{})
	assert.ErrorIs(t, err, context.Canceled)
}
