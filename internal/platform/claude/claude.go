// Package claude is the Anthropic Claude text backend of the provider
// gateway. Claude has no image capability here.
package claude

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/easybiz/easybiz-api/internal/config"
	"github.com/easybiz/easybiz-api/internal/generation"
)

// Name identifies this backend in capabilities, errors and metrics.
const Name = "claude"

type messagesAPI interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Generator calls the Anthropic Messages API.
type Generator struct {
	logger      *slog.Logger
	messages    messagesAPI
	model       string
	temperature float64
	maxTokens   int64
}

// NewGenerator creates a Generator from the provider configuration.
func NewGenerator(logger *slog.Logger, cfg config.ProvidersConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ClaudeAPIKey == "" {
		return nil, fmt.Errorf("%w: claude API key cannot be empty", generation.ErrInvalidConfig)
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.ClaudeAPIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	)

	return newGenerator(&client.Messages, cfg, logger)
}

func newGenerator(messages messagesAPI, cfg config.ProvidersConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.ClaudeModel == "" {
		return nil, fmt.Errorf("%w: claude model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: claude requires a positive max_tokens", generation.ErrInvalidConfig)
	}

	return &Generator{
		logger:      logger.With("component", "claude_generator"),
		messages:    messages,
		model:       cfg.ClaudeModel,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
	}, nil
}

// Name returns the backend name.
func (g *Generator) Name() string { return Name }

// GenerateText sends prompt as a single user turn and joins the text blocks
// of the reply.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	msg, err := g.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(g.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", fmt.Errorf("%w: nil message", generation.ErrInvalidResponse)
	}
	if msg.StopReason == anthropic.StopReasonRefusal {
		return "", fmt.Errorf("%w: model refused the request", generation.ErrContentBlocked)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: no text in response", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "message received",
		"model", msg.Model,
		"stop_reason", msg.StopReason,
		"output_tokens", msg.Usage.OutputTokens)

	return sb.String(), nil
}
