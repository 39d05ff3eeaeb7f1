package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test.
// Empty values are treated as unset by viper.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// TestLoadDefaults verifies that Load applies defaults when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"EASYBIZ_SERVER_PORT":             "",
		"EASYBIZ_SERVER_LOG_LEVEL":        "",
		"EASYBIZ_PROVIDERS_OPENAI_API_KEY": "",
	})

	cfg, err := Load("")

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 16, cfg.Task.WorkerCount)
	assert.Equal(t, 256, cfg.Task.QueueSize)
	assert.Equal(t, 0.7, cfg.Providers.Temperature)
	assert.Equal(t, 2*time.Minute, cfg.Providers.RequestTimeout())
	assert.Empty(t, cfg.Providers.OpenAIAPIKey)
	assert.False(t, cfg.Providers.HasTextProvider())
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"EASYBIZ_SERVER_PORT":                       "9090",
		"EASYBIZ_SERVER_LOG_LEVEL":                  "debug",
		"EASYBIZ_PROVIDERS_OPENAI_API_KEY":          "sk-test",
		"EASYBIZ_PROVIDERS_GEMINI_API_KEY":          "gemini-test",
		"EASYBIZ_PROVIDERS_MAX_RETRIES":             "0",
		"EASYBIZ_PROVIDERS_REQUEST_TIMEOUT_SECONDS": "45",
		"EASYBIZ_TASK_WORKER_COUNT":                 "4",
		"EASYBIZ_AUTH_JWT_SECRET":                   "thisisasecretkeythatis32charslong!!",
	})

	cfg, err := Load("")

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAIAPIKey)
	assert.Equal(t, "gemini-test", cfg.Providers.GeminiAPIKey)
	assert.Empty(t, cfg.Providers.ClaudeAPIKey)
	assert.Equal(t, 0, cfg.Providers.MaxRetries)
	assert.Equal(t, 45*time.Second, cfg.Providers.RequestTimeout())
	assert.Equal(t, 4, cfg.Task.WorkerCount)
	assert.Equal(t, "thisisasecretkeythatis32charslong!!", cfg.Auth.JWTSecret)
	assert.True(t, cfg.Providers.HasTextProvider())
}

// TestLoadFromFile verifies that file values apply and env still wins.
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 7070
  log_level: warn
providers:
  claude_api_key: file-key
  gemini_text_model: gemini-1.5-pro
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	setupEnv(t, map[string]string{
		"EASYBIZ_SERVER_PORT": "7171",
	})

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 7171, cfg.Server.Port, "env should take precedence over file")
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, "file-key", cfg.Providers.ClaudeAPIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Providers.GeminiTextModel)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoadValidationErrors verifies that Load rejects invalid configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Invalid port number",
			envVars: map[string]string{"EASYBIZ_SERVER_PORT": "999999"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"EASYBIZ_SERVER_LOG_LEVEL": "invalid-level"},
		},
		{
			name:    "Short JWT secret",
			envVars: map[string]string{"EASYBIZ_AUTH_JWT_SECRET": "tooshort"},
		},
		{
			name:    "Zero workers",
			envVars: map[string]string{"EASYBIZ_TASK_WORKER_COUNT": "0"},
		},
		{
			name:    "Too many retries",
			envVars: map[string]string{"EASYBIZ_PROVIDERS_MAX_RETRIES": "50"},
		},
		{
			name:    "Zero request timeout",
			envVars: map[string]string{"EASYBIZ_PROVIDERS_REQUEST_TIMEOUT_SECONDS": "0"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load("")

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
