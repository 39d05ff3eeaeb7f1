// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, an optional YAML file, environment
// variables). It provides type-safe access to the settings needed by the
// HTTP server, the provider backends and the task runner while keeping
// configuration details separate from business logic.
package config
