package pipeline

import (
	"context"
	"fmt"

	"github.com/easybiz/easybiz-api/internal/generation"
)

// Sections is the fixed, ordered list of website sections.
var Sections = []string{"hero", "about", "services", "testimonials", "contact"}

// TemplateSuggestions is returned with every website_content result.
var TemplateSuggestions = []string{"modern", "professional", "minimalist", "corporate"}

const sectionPrompt = "Create engaging %s section content for a business website. " +
	"Include headline, subheadline, and body content."

// WebsiteContentResult is the result of the website_content pipeline. Each
// section holds a generation.Content or an ErrorMarker.
type WebsiteContentResult struct {
	WebsiteContent      map[string]any `json:"website_content"`
	TemplateSuggestions []string       `json:"template_suggestions"`
	GeneratedAt         string         `json:"generated_at"`
}

// WebsiteContent generates copy for every website section independently.
type WebsiteContent struct {
	base
}

func (p *WebsiteContent) Type() generation.GenerationType { return generation.TypeWebsiteContent }

func (p *WebsiteContent) Run(ctx context.Context, req generation.Request) (any, error) {
	pc := req.Prompts

	sections := make(map[string]any, len(Sections))
	for _, section := range Sections {
		content, err := p.gen.GenerateText(ctx, fmt.Sprintf(sectionPrompt, section), pc.With("section", section))
		if err != nil {
			p.logger.WarnContext(ctx, "website section failed", "section", section, "error", err)
			sections[section] = newErrorMarker(err)
			continue
		}
		sections[section] = content
	}

	return WebsiteContentResult{
		WebsiteContent:      sections,
		TemplateSuggestions: append([]string(nil), TemplateSuggestions...),
		GeneratedAt:         p.timestamp(),
	}, nil
}
