package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easybiz/easybiz-api/internal/config"
	"github.com/easybiz/easybiz-api/internal/platform/claude"
	"github.com/easybiz/easybiz-api/internal/platform/gemini"
	"github.com/easybiz/easybiz-api/internal/platform/openai"
)

// NewFromConfig builds a Gateway with one backend per provider whose API key
// is set. Missing keys disable the matching capabilities; an empty
// configuration yields a Gateway that reports no capabilities.
func NewFromConfig(
	ctx context.Context,
	cfg config.ProvidersConfig,
	logger *slog.Logger,
	opts ...Option,
) (*Gateway, error) {
	var (
		text   []TextBackend
		images []ImageBackend
	)

	if cfg.OpenAIAPIKey != "" {
		g, err := openai.NewGenerator(logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai backend: %w", err)
		}
		text = append(text, g)
		images = append(images, g)
	}

	if cfg.ClaudeAPIKey != "" {
		g, err := claude.NewGenerator(logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create claude backend: %w", err)
		}
		text = append(text, g)
	}

	if cfg.GeminiAPIKey != "" {
		g, err := gemini.NewGenerator(ctx, logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini backend: %w", err)
		}
		text = append(text, g)
		images = append(images, g)
	}

	if cfg.PromptTemplatePath != "" {
		tmpl, err := LoadPromptTemplate(cfg.PromptTemplatePath)
		if err != nil {
			return nil, err
		}
		opts = append([]Option{WithPromptTemplate(tmpl)}, opts...)
	}

	opts = append([]Option{WithRequestTimeout(cfg.RequestTimeout())}, opts...)

	if len(text) == 0 {
		logger.Warn("no text generation provider configured; generation requests will fail")
	}

	return NewGateway(text, images, logger, opts...), nil
}
