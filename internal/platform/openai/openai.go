// Package openai is the OpenAI backend of the provider gateway: chat
// completions for text and DALL·E for images. Retries against the same
// model are delegated to the SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/easybiz/easybiz-api/internal/config"
	"github.com/easybiz/easybiz-api/internal/generation"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Name identifies this backend in capabilities, errors and metrics.
const Name = "openai"

const finishReasonContentFilter = "content_filter"

type chatAPI interface {
	New(
		ctx context.Context,
		body openaisdk.ChatCompletionNewParams,
		opts ...option.RequestOption,
	) (*openaisdk.ChatCompletion, error)
}

type imagesAPI interface {
	Generate(
		ctx context.Context,
		body openaisdk.ImageGenerateParams,
		opts ...option.RequestOption,
	) (*openaisdk.ImagesResponse, error)
}

// Generator calls the OpenAI chat and image endpoints.
type Generator struct {
	logger      *slog.Logger
	chat        chatAPI
	images      imagesAPI
	textModel   string
	imageModel  string
	temperature float64
	maxTokens   int64
}

// NewGenerator creates a Generator from the provider configuration.
func NewGenerator(logger *slog.Logger, cfg config.ProvidersConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	client := openaisdk.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	)

	return newGenerator(&client.Chat.Completions, &client.Images, cfg, logger)
}

func newGenerator(chat chatAPI, images imagesAPI, cfg config.ProvidersConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.OpenAITextModel == "" || cfg.OpenAIImageModel == "" {
		return nil, fmt.Errorf("%w: openai model names cannot be empty", generation.ErrInvalidConfig)
	}

	return &Generator{
		logger:      logger.With("component", "openai_generator"),
		chat:        chat,
		images:      images,
		textModel:   cfg.OpenAITextModel,
		imageModel:  cfg.OpenAIImageModel,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
	}, nil
}

// Name returns the backend name.
func (g *Generator) Name() string { return Name }

// GenerateText sends prompt as a single user message and returns the first
// choice's content.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.chat.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: g.textModel,
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature:         openaisdk.Float(g.temperature),
		MaxCompletionTokens: openaisdk.Int(g.maxTokens),
	})
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == finishReasonContentFilter || choice.Message.Refusal != "" {
		return "", fmt.Errorf("%w: %s", generation.ErrContentBlocked, choice.Message.Refusal)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("%w: empty message content", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "chat completion received",
		"model", resp.Model,
		"finish_reason", choice.FinishReason,
		"total_tokens", resp.Usage.TotalTokens)

	return choice.Message.Content, nil
}

// GenerateImage asks DALL·E for one 1024x1024 image and returns its URL.
func (g *Generator) GenerateImage(ctx context.Context, description, style string) (string, error) {
	resp, err := g.images.Generate(ctx, openaisdk.ImageGenerateParams{
		Prompt:         EnhancePrompt(description, style),
		Model:          g.imageModel,
		N:              openaisdk.Int(1),
		Size:           openaisdk.ImageGenerateParamsSize1024x1024,
		ResponseFormat: openaisdk.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("%w: no image URL in response", generation.ErrInvalidResponse)
	}
	return resp.Data[0].URL, nil
}

// EnhancePrompt wraps an image description in the DALL·E style preamble.
func EnhancePrompt(description, style string) string {
	return fmt.Sprintf("Professional %s style: %s. Clean, modern business design.", style, description)
}
