package generation

import "context"

// Generator is the boundary between the content pipelines and the external
// AI services. Implementations pick a backend per call; callers only see
// structured results or the errors declared in errors.go.
type Generator interface {
	// GenerateText sends prompt to a text backend, prefixed by a system prompt
	// built from pc, and returns the parsed response.
	GenerateText(ctx context.Context, prompt string, pc PromptContext) (Content, error)

	// GenerateImage renders description in the given style.
	GenerateImage(ctx context.Context, description, style string) (Image, error)

	// CanGenerateImages reports whether any image backend is configured.
	CanGenerateImages() bool
}
