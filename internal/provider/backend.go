package provider

import (
	"context"
	"time"
)

// Backend names as reported by TextBackend.Name and ImageBackend.Name.
const (
	NameOpenAI = "openai"
	NameClaude = "claude"
	NameGemini = "gemini"
)

// Operation labels passed to CallObserver.
const (
	OperationText  = "text"
	OperationImage = "image"
)

// TextBackend completes a fully rendered prompt and returns the raw reply.
type TextBackend interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageBackend renders a description in a style and returns an image URL.
// Backends apply their own prompt preamble.
type ImageBackend interface {
	Name() string
	GenerateImage(ctx context.Context, description, style string) (string, error)
}

// CallObserver is notified after every backend call.
type CallObserver interface {
	ObserveProviderCall(provider, operation string, duration time.Duration, err error)
}

var priority = map[string]int{
	NameOpenAI: 0,
	NameClaude: 1,
	NameGemini: 2,
}

func rank(name string) int {
	if r, ok := priority[name]; ok {
		return r
	}
	return len(priority)
}
