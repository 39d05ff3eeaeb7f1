package provider

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"text/template"

	"github.com/easybiz/easybiz-api/internal/generation"
)

const defaultTone = "professional"

//go:embed system_prompt.tmpl
var defaultSystemPrompt string

type promptData struct {
	BusinessName   string
	Industry       string
	Tone           string
	TargetAudience string
	Extras         []promptExtra
}

type promptExtra struct {
	Key   string
	Value any
}

// DefaultPromptTemplate returns the built-in system prompt template.
func DefaultPromptTemplate() *template.Template {
	return template.Must(template.New("system_prompt").Parse(defaultSystemPrompt))
}

// LoadPromptTemplate parses a system prompt template from path.
func LoadPromptTemplate(path string) (*template.Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			generation.ErrInvalidConfig, path, err)
	}

	tmpl, err := template.New("system_prompt").Option("missingkey=zero").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// renderPrompt builds the full prompt sent to a text backend: the system
// prompt for pc followed by the user request.
func renderPrompt(tmpl *template.Template, prompt string, pc generation.PromptContext) (string, error) {
	data := promptData{
		BusinessName:   pc.BusinessName,
		Industry:       pc.Industry,
		Tone:           pc.Tone,
		TargetAudience: pc.TargetAudience,
		Extras:         scalarExtras(pc.Extra),
	}
	if data.Tone == "" {
		data.Tone = defaultTone
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String() + "\n\nUser Request: " + prompt, nil
}

// scalarExtras returns the string, number and bool entries of extra sorted by key.
func scalarExtras(extra map[string]any) []promptExtra {
	if len(extra) == 0 {
		return nil
	}

	out := make([]promptExtra, 0, len(extra))
	for k, v := range extra {
		switch v.(type) {
		case string, bool, float64, float32, int, int64, int32:
			out = append(out, promptExtra{Key: k, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
