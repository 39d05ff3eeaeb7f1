package generation

import "encoding/json"

// TextResponseType marks a Content that wraps raw, non-JSON provider output.
const TextResponseType = "text_response"

// Content is a structured record produced by text generation. When the
// provider answers with something other than a JSON object, Content is
// {"content": <raw text>, "type": "text_response"}.
type Content map[string]any

// NewTextContent wraps raw text in the text_response shape.
func NewTextContent(text string) Content {
	return Content{"content": text, "type": TextResponseType}
}

// Text returns the "content" field when it is a string, otherwise the JSON
// encoding of the whole record. It is used when one generation step feeds
// another as plain text.
func (c Content) Text() string {
	if s, ok := c["content"].(string); ok {
		return s
	}
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(b)
}

// Image is the result of image generation.
type Image struct {
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Style       string `json:"style"`
}
