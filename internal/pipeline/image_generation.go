package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/easybiz/easybiz-api/internal/generation"
)

const derivedImageDescription = "Professional brand image for %s in the %s industry."

// ImageGenerationResult is the result of the image_generation pipeline.
type ImageGenerationResult struct {
	Image       generation.Image `json:"image"`
	GeneratedAt string           `json:"generated_at"`
}

// ImageGeneration renders one standalone image.
//
// The description comes from prompts.description, or is derived from the
// business name and industry. The style comes from prompts.style, then
// options.style.
type ImageGeneration struct {
	base
}

func (p *ImageGeneration) Type() generation.GenerationType { return generation.TypeImageGeneration }

func (p *ImageGeneration) Run(ctx context.Context, req generation.Request) (any, error) {
	pc := req.Prompts

	description := strings.TrimSpace(pc.Description)
	if description == "" {
		if pc.BusinessName == "" && pc.Industry == "" {
			return nil, fmt.Errorf("%w: description or business_name is required", ErrMissingInput)
		}
		description = fmt.Sprintf(derivedImageDescription, pc.BusinessName, pc.Industry)
	}

	style := pc.Style
	if style == "" {
		style = req.Option(generation.KeyStyle, "")
	}

	img, err := p.gen.GenerateImage(ctx, description, style)
	if err != nil {
		return nil, err
	}

	return ImageGenerationResult{Image: img, GeneratedAt: p.timestamp()}, nil
}
