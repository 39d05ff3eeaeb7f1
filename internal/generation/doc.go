// Package generation defines the vocabulary shared by everything that talks to
// AI/LLM services for business content generation: the request and prompt
// context types, the structured Content and Image results, the Generator
// interface the pipelines depend on, and the error taxonomy providers return.
//
// The package has no knowledge of any concrete provider. Backends for OpenAI,
// Claude and Gemini live under internal/platform and are composed behind the
// provider gateway.
package generation
