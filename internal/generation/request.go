package generation

import (
	"encoding/json"
	"fmt"
	"maps"
)

// GenerationType identifies which content pipeline handles a request.
type GenerationType string

// Supported generation types
const (
	TypeBrandKit        GenerationType = "brand_kit"
	TypeSocialMedia     GenerationType = "social_media"
	TypeWebsiteContent  GenerationType = "website_content"
	TypeBusinessPlan    GenerationType = "business_plan"
	TypeImageGeneration GenerationType = "image_generation"
)

// Request is a single content generation request. It is consumed by exactly
// one pipeline run and never modified after it is received.
type Request struct {
	ProjectID      string         `json:"project_id" validate:"required,max=128"`
	GenerationType GenerationType `json:"generation_type" validate:"required,oneof=brand_kit social_media website_content business_plan image_generation"`
	Prompts        PromptContext  `json:"prompts" validate:"required"`
	Options        map[string]any `json:"options,omitempty"`
}

// Option returns a string option, or def when the option is absent or not a string.
func (r Request) Option(key, def string) string {
	if v, ok := r.Options[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Prompt context keys with dedicated fields.
const (
	KeyBusinessName   = "business_name"
	KeyIndustry       = "industry"
	KeyTone           = "tone"
	KeyTargetAudience = "target_audience"
	KeyLogoStyle      = "logo_style"
	KeyDescription    = "description"
	KeyStyle          = "style"
)

// PromptContext is the business context injected into every system prompt.
// Well-known keys have named fields; any other key is kept in Extra so that
// callers can pass data the service does not know about yet. On the wire it
// is a flat JSON object.
type PromptContext struct {
	BusinessName   string
	Industry       string
	Tone           string
	TargetAudience string
	LogoStyle      string
	Description    string
	Style          string
	Extra          map[string]any

	// supplied marks a context that was set, so an empty JSON object is
	// still distinguishable from a missing one.
	supplied bool
}

func (pc *PromptContext) fields() map[string]*string {
	return map[string]*string{
		KeyBusinessName:   &pc.BusinessName,
		KeyIndustry:       &pc.Industry,
		KeyTone:           &pc.Tone,
		KeyTargetAudience: &pc.TargetAudience,
		KeyLogoStyle:      &pc.LogoStyle,
		KeyDescription:    &pc.Description,
		KeyStyle:          &pc.Style,
	}
}

// Set assigns a value by key, routing well-known keys to their fields.
// Non-string values for well-known keys are formatted with %v.
func (pc *PromptContext) Set(key string, value any) {
	pc.supplied = true
	if field, ok := pc.fields()[key]; ok {
		switch v := value.(type) {
		case string:
			*field = v
		case nil:
			*field = ""
		default:
			*field = fmt.Sprintf("%v", v)
		}
		return
	}
	if pc.Extra == nil {
		pc.Extra = make(map[string]any)
	}
	pc.Extra[key] = value
}

// Get returns the value stored under key as a string. Missing keys and
// non-string extras return "".
func (pc PromptContext) Get(key string) string {
	if field, ok := pc.fields()[key]; ok {
		return *field
	}
	s, _ := pc.Extra[key].(string)
	return s
}

// With returns a copy of pc with key set to value. pc is not modified.
func (pc PromptContext) With(key string, value any) PromptContext {
	out := pc.clone()
	out.Set(key, value)
	return out
}

// Merge returns a copy of pc overlaid with every key of c. Keys in c win.
func (pc PromptContext) Merge(c Content) PromptContext {
	out := pc.clone()
	for k, v := range c {
		out.Set(k, v)
	}
	return out
}

func (pc PromptContext) clone() PromptContext {
	out := pc
	out.Extra = maps.Clone(pc.Extra)
	return out
}

// MarshalJSON encodes the context as a flat object. Empty named fields are omitted.
func (pc PromptContext) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(pc.Extra)+7)
	maps.Copy(m, pc.Extra)
	for k, field := range pc.fields() {
		if *field != "" {
			m[k] = *field
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a flat object into named fields and Extra.
func (pc *PromptContext) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*pc = PromptContext{supplied: m != nil}
	for k, v := range m {
		pc.Set(k, v)
	}
	return nil
}
