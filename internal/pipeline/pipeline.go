package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/easybiz/easybiz-api/internal/redact"
)

// ErrMissingInput is returned when a request lacks the context a pipeline
// needs to build its prompts.
var ErrMissingInput = errors.New("missing required prompt input")

// Pipeline produces the result of one generation type.
type Pipeline interface {
	Type() generation.GenerationType
	Run(ctx context.Context, req generation.Request) (any, error)
}

// ErrorMarker is recorded in place of a step result when an optional step fails.
type ErrorMarker struct {
	Error string `json:"error"`
}

func newErrorMarker(err error) ErrorMarker {
	return ErrorMarker{Error: redact.Error(err)}
}

// base carries what every pipeline needs.
type base struct {
	gen    generation.Generator
	logger *slog.Logger
	now    func() time.Time
}

func (b base) timestamp() string {
	return b.now().UTC().Format(time.RFC3339Nano)
}

// Registry maps generation types to pipelines.
type Registry struct {
	pipelines map[generation.GenerationType]Pipeline
}

// NewRegistry creates a Registry with every built-in pipeline bound to gen.
func NewRegistry(gen generation.Generator, logger *slog.Logger) *Registry {
	return newRegistry(gen, logger, time.Now)
}

func newRegistry(gen generation.Generator, logger *slog.Logger, now func() time.Time) *Registry {
	b := base{gen: gen, logger: logger.With("component", "pipeline"), now: now}

	r := &Registry{pipelines: make(map[generation.GenerationType]Pipeline)}
	for _, p := range []Pipeline{
		&BrandKit{base: b},
		&SocialMedia{base: b},
		&WebsiteContent{base: b},
		&BusinessPlan{base: b},
		&ImageGeneration{base: b},
	} {
		r.pipelines[p.Type()] = p
	}
	return r
}

// Get returns the pipeline for t.
func (r *Registry) Get(t generation.GenerationType) (Pipeline, bool) {
	p, ok := r.pipelines[t]
	return p, ok
}
