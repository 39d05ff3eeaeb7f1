package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// EASYBIZ_PROVIDERS_OPENAI_API_KEY.
const EnvPrefix = "EASYBIZ"

// defaults is the full key set. Every key must be listed here so that
// viper's AutomaticEnv can resolve it during Unmarshal.
var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.project_name":             "EasyBiz AI Service",
	"server.version":                  "1.0.0",
	"server.shutdown_timeout_seconds": 10,

	"providers.openai_api_key":          "",
	"providers.claude_api_key":          "",
	"providers.gemini_api_key":          "",
	"providers.openai_text_model":       "gpt-4o",
	"providers.openai_image_model":      "dall-e-3",
	"providers.claude_model":            "claude-3-5-sonnet-latest",
	"providers.gemini_text_model":       "gemini-2.0-flash",
	"providers.gemini_image_model":      "imagen-3.0-generate-002",
	"providers.temperature":             0.7,
	"providers.max_tokens":              2048,
	"providers.max_retries":             2,
	"providers.retry_delay_seconds":     2,
	"providers.request_timeout_seconds": 120,
	"providers.prompt_template_path":    "",

	"task.worker_count":             16,
	"task.queue_size":               256,
	"task.shutdown_timeout_seconds": 30,

	"auth.jwt_secret":             "",
	"auth.token_lifetime_minutes": 60,
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and environment variables. Environment variables take precedence
// over values from the config file. Returns a populated Config or an error
// if loading or validation fails.
func Load(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
