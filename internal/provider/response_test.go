package provider

import (
	"testing"

	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected generation.Content
	}{
		{
			name:     "json object",
			raw:      `{"headline":"Fresh bread daily"}`,
			expected: generation.Content{"headline": "Fresh bread daily"},
		},
		{
			name:     "surrounding whitespace",
			raw:      "\n  {\"a\": 1}  \n",
			expected: generation.Content{"a": float64(1)},
		},
		{
			name:     "json code fence",
			raw:      "```json\n{\"a\": \"b\"}\n```",
			expected: generation.Content{"a": "b"},
		},
		{
			name:     "bare code fence",
			raw:      "```\n{\"a\": \"b\"}\n```",
			expected: generation.Content{"a": "b"},
		},
		{
			name:     "plain text",
			raw:      "  Hello there  ",
			expected: generation.Content{"content": "Hello there", "type": "text_response"},
		},
		{
			name:     "json array is not structured",
			raw:      `[1, 2, 3]`,
			expected: generation.Content{"content": "[1, 2, 3]", "type": "text_response"},
		},
		{
			name:     "json null is not structured",
			raw:      `null`,
			expected: generation.Content{"content": "null", "type": "text_response"},
		},
		{
			name:     "truncated json",
			raw:      `{"a": `,
			expected: generation.Content{"content": `{"a":`, "type": "text_response"},
		},
		{
			name:     "empty",
			raw:      "   ",
			expected: generation.Content{"content": "", "type": "text_response"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseResponse(tc.raw))
		})
	}
}
