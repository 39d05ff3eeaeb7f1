// Package redact strips provider credentials and tokens from strings before
// they are logged, stored as a task error, or returned in error responses.
// Provider SDK errors routinely echo request URLs and headers, so every error
// that crosses a backend boundary goes through Error before it leaves the
// process.
package redact

import "regexp"

// Placeholders substituted for redacted values.
const (
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
	RedactedTokenPlaceholder = "[REDACTED_TOKEN]"
	RedactedJWTPlaceholder   = "[REDACTED_JWT]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; earlier rules may leave placeholders later rules must skip.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	// OpenAI and Anthropic secret keys (sk-..., sk-proj-..., sk-ant-...)
	{
		pattern:     regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{16,}`),
		replacement: RedactedKeyPlaceholder,
	},
	// Google API keys
	{
		pattern:     regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{30,}`),
		replacement: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/=-]{8,}`),
		replacement: "Bearer " + RedactedTokenPlaceholder,
	},
	// Keys passed as query parameters
	{
		pattern:     regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token)=)[^&\s"']+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|x-api-key|token|secret)(["']?\s*[:=]\s*["']?)[A-Za-z0-9_\-.~+/]{8,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
