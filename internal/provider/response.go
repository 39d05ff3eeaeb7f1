package provider

import (
	"encoding/json"
	"strings"

	"github.com/easybiz/easybiz-api/internal/generation"
)

// parseResponse turns raw backend output into Content. A JSON object,
// optionally wrapped in a markdown code fence, is returned as-is; anything
// else becomes a text_response record holding the trimmed text.
func parseResponse(raw string) generation.Content {
	trimmed := strings.TrimSpace(raw)

	var content generation.Content
	if err := json.Unmarshal([]byte(stripCodeFence(trimmed)), &content); err != nil || content == nil {
		return generation.NewTextContent(trimmed)
	}
	return content
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}

	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		lang := strings.TrimSpace(body[:nl])
		if lang == "" || !strings.ContainsAny(lang, "{[\"") {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body)
}
