package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/easybiz/easybiz-api/internal/generation"
)

// TextCall records one GenerateText invocation.
type TextCall struct {
	Prompt  string
	Context generation.PromptContext
}

// ImageCall records one GenerateImage invocation.
type ImageCall struct {
	Description string
	Style       string
}

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, prompt string, pc generation.PromptContext) (generation.Content, error)

	// GenerateImageFn allows test cases to mock the GenerateImage behavior
	GenerateImageFn func(ctx context.Context, description, style string) (generation.Image, error)

	// Images reports the value returned by CanGenerateImages
	Images bool

	// Default response values
	Content generation.Content
	Image   generation.Image
	Err     error

	mu         sync.Mutex
	textCalls  []TextCall
	imageCalls []ImageCall
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateText implements the generation.Generator interface
func (m *MockGenerator) GenerateText(
	ctx context.Context,
	prompt string,
	pc generation.PromptContext,
) (generation.Content, error) {
	m.mu.Lock()
	m.textCalls = append(m.textCalls, TextCall{Prompt: prompt, Context: pc})
	m.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, prompt, pc)
	}
	return m.Content, m.Err
}

// GenerateImage implements the generation.Generator interface
func (m *MockGenerator) GenerateImage(ctx context.Context, description, style string) (generation.Image, error) {
	m.mu.Lock()
	m.imageCalls = append(m.imageCalls, ImageCall{Description: description, Style: style})
	m.mu.Unlock()

	if m.GenerateImageFn != nil {
		return m.GenerateImageFn(ctx, description, style)
	}
	return m.Image, m.Err
}

// CanGenerateImages implements the generation.Generator interface
func (m *MockGenerator) CanGenerateImages() bool {
	return m.Images
}

// TextCalls returns a copy of the recorded GenerateText calls.
func (m *MockGenerator) TextCalls() []TextCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TextCall(nil), m.textCalls...)
}

// ImageCalls returns a copy of the recorded GenerateImage calls.
func (m *MockGenerator) ImageCalls() []ImageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ImageCall(nil), m.imageCalls...)
}

// Reset clears the call tracking state
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textCalls = nil
	m.imageCalls = nil
}

// FailTextWhen returns a GenerateTextFn that fails with err for every prompt
// containing substr and answers {"prompt": <prompt>} otherwise.
func FailTextWhen(substr string, err error) func(context.Context, string, generation.PromptContext) (generation.Content, error) {
	return func(_ context.Context, prompt string, _ generation.PromptContext) (generation.Content, error) {
		if strings.Contains(prompt, substr) {
			return nil, err
		}
		return generation.Content{"prompt": prompt}, nil
	}
}

// NewMockGeneratorWithError creates a MockGenerator whose calls all fail with err
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
