package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Providers ProvidersConfig `mapstructure:"providers" validate:"required"`
	Task      TaskConfig      `mapstructure:"task" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ProjectName            string `mapstructure:"project_name" validate:"required"`
	Version                string `mapstructure:"version" validate:"required"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ProvidersConfig contains the credentials and tuning for the AI backends.
// Every API key is optional; a missing key disables exactly the capabilities
// that backend provides.
type ProvidersConfig struct {
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	ClaudeAPIKey string `mapstructure:"claude_api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	OpenAITextModel  string `mapstructure:"openai_text_model" validate:"required"`
	OpenAIImageModel string `mapstructure:"openai_image_model" validate:"required"`
	ClaudeModel      string `mapstructure:"claude_model" validate:"required"`
	GeminiTextModel  string `mapstructure:"gemini_text_model" validate:"required"`
	GeminiImageModel string `mapstructure:"gemini_image_model" validate:"required"`

	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gt=0"`

	// MaxRetries and RetryDelaySeconds control retries against the same
	// backend. There is never a retry against a different backend.
	MaxRetries        int `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0"`

	// RequestTimeoutSeconds bounds one backend call, retries included.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=1"`

	// PromptTemplatePath optionally replaces the built-in system prompt template.
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`
}

// TaskConfig contains the settings of the background task runner.
type TaskConfig struct {
	WorkerCount            int `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize              int `mapstructure:"queue_size" validate:"gte=1"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// AuthConfig contains the optional bearer token settings. When JWTSecret is
// empty the generation endpoints are public.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=1"`
}

// Enabled reports whether bearer token authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// RequestTimeout returns the per-call backend deadline, or zero when unset.
func (c ProvidersConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// HasTextProvider reports whether at least one text backend has credentials.
func (c ProvidersConfig) HasTextProvider() bool {
	return c.OpenAIAPIKey != "" || c.ClaudeAPIKey != "" || c.GeminiAPIKey != ""
}
