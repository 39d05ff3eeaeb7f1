// Package provider implements generation.Generator on top of the configured
// AI backends.
//
// The Gateway holds at most one backend per provider and capability and
// always calls the highest-priority one that is configured: OpenAI, then
// Claude, then Gemini for text; OpenAI, then Gemini for images. Fallback is
// by availability only. A configured backend that fails surfaces its error
// and the next backend is not tried.
package provider
