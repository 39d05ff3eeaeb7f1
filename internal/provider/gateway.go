package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"text/template"
	"time"

	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/easybiz/easybiz-api/internal/redact"
)

const defaultImageStyle = "professional"

// Capabilities records which backend/capability pairs are configured.
type Capabilities struct {
	OpenAIText  bool `json:"openai_text"`
	ClaudeText  bool `json:"claude_text"`
	GeminiText  bool `json:"gemini_text"`
	OpenAIImage bool `json:"openai_image"`
	GeminiImage bool `json:"gemini_image"`
}

// Services summarises the gateway for health reporting.
type Services struct {
	TextGeneration  bool         `json:"text_generation"`
	ImageGeneration bool         `json:"image_generation"`
	ModelsAvailable Capabilities `json:"models_available"`
}

// Gateway routes generation calls to the highest-priority configured backend.
type Gateway struct {
	text     []TextBackend
	images   []ImageBackend
	caps     Capabilities
	prompt   *template.Template
	observer CallObserver
	timeout  time.Duration
	logger   *slog.Logger
}

var _ generation.Generator = (*Gateway)(nil)

// Option configures a Gateway.
type Option func(*Gateway)

// WithPromptTemplate replaces the built-in system prompt template.
func WithPromptTemplate(tmpl *template.Template) Option {
	return func(g *Gateway) {
		if tmpl != nil {
			g.prompt = tmpl
		}
	}
}

// WithObserver registers a CallObserver for backend calls.
func WithObserver(o CallObserver) Option {
	return func(g *Gateway) {
		g.observer = o
	}
}

// WithRequestTimeout bounds every backend call by d. Zero leaves calls bounded
// only by the caller's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// NewGateway creates a Gateway over the given backends. Backends are ordered
// by provider priority regardless of argument order; nil entries are skipped.
func NewGateway(text []TextBackend, images []ImageBackend, logger *slog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		prompt: DefaultPromptTemplate(),
		logger: logger.With("component", "provider_gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, b := range text {
		if b != nil {
			g.text = append(g.text, b)
		}
	}
	for _, b := range images {
		if b != nil {
			g.images = append(g.images, b)
		}
	}
	sort.SliceStable(g.text, func(i, j int) bool { return rank(g.text[i].Name()) < rank(g.text[j].Name()) })
	sort.SliceStable(g.images, func(i, j int) bool { return rank(g.images[i].Name()) < rank(g.images[j].Name()) })

	for _, b := range g.text {
		switch b.Name() {
		case NameOpenAI:
			g.caps.OpenAIText = true
		case NameClaude:
			g.caps.ClaudeText = true
		case NameGemini:
			g.caps.GeminiText = true
		}
	}
	for _, b := range g.images {
		switch b.Name() {
		case NameOpenAI:
			g.caps.OpenAIImage = true
		case NameGemini:
			g.caps.GeminiImage = true
		}
	}

	g.logger.Info("provider gateway initialized",
		"text_backends", backendNames(g.text),
		"image_backends", backendNames(g.images),
		"request_timeout", g.timeout.String())

	return g
}

// GenerateText renders the system prompt for pc, appends prompt as the user
// request and sends it to the first text backend.
func (g *Gateway) GenerateText(ctx context.Context, prompt string, pc generation.PromptContext) (generation.Content, error) {
	if len(g.text) == 0 {
		return nil, fmt.Errorf("%w: no text generation backend configured", generation.ErrNoProviderAvailable)
	}

	full, err := renderPrompt(g.prompt, prompt, pc)
	if err != nil {
		return nil, err
	}

	backend := g.text[0]
	callCtx, cancel := g.callContext(ctx)
	defer cancel()
	start := time.Now()
	raw, err := backend.GenerateText(callCtx, full)
	g.observe(ctx, backend.Name(), OperationText, time.Since(start), err)
	if err != nil {
		return nil, generation.NewProviderError(backend.Name(), OperationText, err)
	}

	return parseResponse(raw), nil
}

// GenerateImage sends description to the first image backend. An empty
// style defaults to "professional".
func (g *Gateway) GenerateImage(ctx context.Context, description, style string) (generation.Image, error) {
	if len(g.images) == 0 {
		return generation.Image{}, fmt.Errorf("%w: no image generation backend configured",
			generation.ErrNoProviderAvailable)
	}
	if style == "" {
		style = defaultImageStyle
	}

	backend := g.images[0]
	callCtx, cancel := g.callContext(ctx)
	defer cancel()
	start := time.Now()
	url, err := backend.GenerateImage(callCtx, description, style)
	g.observe(ctx, backend.Name(), OperationImage, time.Since(start), err)
	if err != nil {
		return generation.Image{}, generation.NewProviderError(backend.Name(), OperationImage, err)
	}

	return generation.Image{ImageURL: url, Description: description, Style: style}, nil
}

// CanGenerateImages reports whether any image backend is configured.
func (g *Gateway) CanGenerateImages() bool {
	return len(g.images) > 0
}

// Capabilities returns the configured backend/capability pairs.
func (g *Gateway) Capabilities() Capabilities {
	return g.caps
}

// AvailableServices returns the health summary of the gateway.
func (g *Gateway) AvailableServices() Services {
	return Services{
		TextGeneration:  len(g.text) > 0,
		ImageGeneration: g.CanGenerateImages(),
		ModelsAvailable: g.caps,
	}
}

func (g *Gateway) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *Gateway) observe(ctx context.Context, provider, operation string, elapsed time.Duration, err error) {
	if err != nil {
		g.logger.WarnContext(ctx, "provider call failed",
			"provider", provider,
			"operation", operation,
			"duration_ms", elapsed.Milliseconds(),
			"error", redact.Error(err))
	} else {
		g.logger.DebugContext(ctx, "provider call succeeded",
			"provider", provider,
			"operation", operation,
			"duration_ms", elapsed.Milliseconds())
	}

	if g.observer != nil {
		g.observer.ObserveProviderCall(provider, operation, elapsed, err)
	}
}

func backendNames[T interface{ Name() string }](backends []T) []string {
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name()
	}
	return names
}
