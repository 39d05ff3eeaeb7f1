package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easybiz/easybiz-api/internal/config"
	"github.com/easybiz/easybiz-api/internal/generation"
	"google.golang.org/genai"
)

// Name identifies this backend in capabilities, errors and metrics.
const Name = "gemini"

// modelsAPI is the subset of *genai.Models used by the Generator.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
	GenerateImages(
		ctx context.Context,
		model string,
		prompt string,
		config *genai.GenerateImagesConfig,
	) (*genai.GenerateImagesResponse, error)
}

// Generator calls Gemini for text and Imagen for images.
type Generator struct {
	logger      *slog.Logger
	models      modelsAPI
	textModel   string
	imageModel  string
	temperature float32
	maxTokens   int32
	maxRetries  int
	retryDelay  time.Duration
}

// NewGenerator creates a Generator from the provider configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.ProvidersConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(client.Models, cfg, logger)
}

func newGenerator(models modelsAPI, cfg config.ProvidersConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.GeminiTextModel == "" || cfg.GeminiImageModel == "" {
		return nil, fmt.Errorf("%w: gemini model names cannot be empty", generation.ErrInvalidConfig)
	}

	return &Generator{
		logger:      logger.With("component", "gemini_generator"),
		models:      models,
		textModel:   cfg.GeminiTextModel,
		imageModel:  cfg.GeminiImageModel,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		maxRetries:  cfg.MaxRetries,
		retryDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}, nil
}

// Name returns the backend name.
func (g *Generator) Name() string { return Name }

// GenerateText sends prompt to the text model and returns the concatenated
// text parts of the first candidate.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxTokens,
	}

	var text string
	err := g.withRetry(ctx, "generate_text", func(ctx context.Context) error {
		resp, err := g.models.GenerateContent(ctx, g.textModel, genai.Text(prompt), cfg)
		if err != nil {
			return err
		}
		text, err = extractText(resp)
		return err
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// GenerateImage renders description with Imagen and returns the first image
// as a data URL, or its storage URI when the API returns one.
func (g *Generator) GenerateImage(ctx context.Context, description, style string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", ErrEmptyPrompt
	}

	prompt := EnhancePrompt(description, style)
	cfg := &genai.GenerateImagesConfig{NumberOfImages: 1}

	var url string
	err := g.withRetry(ctx, "generate_image", func(ctx context.Context) error {
		resp, err := g.models.GenerateImages(ctx, g.imageModel, prompt, cfg)
		if err != nil {
			return err
		}
		url, err = extractImageURL(resp)
		return err
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// EnhancePrompt wraps an image description in the Imagen style preamble.
func EnhancePrompt(description, style string) string {
	return fmt.Sprintf("Create a professional %s style image: %s", style, description)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case len(resp.Candidates) == 0 || resp.Candidates[0] == nil:
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	case resp.Candidates[0].Content == nil:
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: response has no text parts", generation.ErrInvalidResponse)
	}
	return sb.String(), nil
}

func extractImageURL(resp *genai.GenerateImagesResponse) (string, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
		return "", fmt.Errorf("%w: no image generated", generation.ErrInvalidResponse)
	}

	generated := resp.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		return "", fmt.Errorf("%w: %s", generation.ErrContentBlocked, generated.RAIFilteredReason)
	}

	img := generated.Image
	switch {
	case img == nil:
		return "", fmt.Errorf("%w: empty image in response", generation.ErrInvalidResponse)
	case img.GCSURI != "":
		return img.GCSURI, nil
	case len(img.ImageBytes) > 0:
		mime := img.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.ImageBytes), nil
	}
	return "", fmt.Errorf("%w: image has neither bytes nor URI", generation.ErrInvalidResponse)
}
