// Package gemini is the Google Gemini backend of the provider gateway.
//
// It offers text generation through the Gemini models and image generation
// through Imagen, both using the google.golang.org/genai client. Calls that
// fail with a transient error (network failure, rate limiting, server
// errors) are retried against the same model with exponential backoff and
// jitter. Safety blocks and unusable responses are returned immediately.
//
// Images come back as raw bytes and are returned to callers as base64 data
// URLs so the result can be embedded in a task result as-is.
package gemini
