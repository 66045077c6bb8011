package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load consults so tests see a clean slate.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"AIPATH_DB", "AIPATH_LOG_LEVEL", "AIPATH_LOG_FILE", "AIPATH_LLM_PROVIDER",
		"AIPATH_ANTHROPIC_API_KEY", "AIPATH_OPENAI_API_KEY", "AIPATH_GEMINI_API_KEY",
		"AIPATH_OPENROUTER_API_KEY", "AIPATH_LLM_ANTHROPIC_API_KEY", "AIPATH_COACH_MAX_TOKENS",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.CoachEnabled())
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 768, cfg.Coach.MaxTokens)
	assert.Equal(t, 45*time.Second, cfg.Coach.Timeout)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
db: /tmp/aipath-test.db
log:
  level: debug
  format: console
llm:
  provider: openai
  timeout: 10s
  openai:
    api_key: sk-file
    model: gpt-test
    base_url: http://localhost:8080/v1
coach:
  max_tokens: 512
  temperature: 0.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "/tmp/aipath-test.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-test", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.LLM.OpenAI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 512, cfg.Coach.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Coach.Temperature, 1e-9)
	// Untouched keys keep their defaults.
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "db: /from/file.db\nlog:\n  level: warn\n")
	t.Setenv("AIPATH_DB", "/from/env.db")
	t.Setenv("AIPATH_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ShortEnvNames(t *testing.T) {
	isolate(t)
	t.Setenv("AIPATH_ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
	assert.True(t, cfg.CoachEnabled())
}

func TestLoad_LongEnvNames(t *testing.T) {
	isolate(t)
	t.Setenv("AIPATH_LLM_ANTHROPIC_API_KEY", "sk-long")
	t.Setenv("AIPATH_COACH_MAX_TOKENS", "1024")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-long", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, 1024, cfg.Coach.MaxTokens)
}

func TestLoad_DiscoversStandardKeys(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-std")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-std", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
}

func TestLoad_ProviderWithoutKey(t *testing.T) {
	isolate(t)
	t.Setenv("AIPATH_LLM_PROVIDER", "gemini")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIPATH_GEMINI_API_KEY")
}

func TestLoad_MockProvider(t *testing.T) {
	isolate(t)
	t.Setenv("AIPATH_LLM_PROVIDER", "mock")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.CoachEnabled())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	isolate(t)
	path := writeFile(t, "log:\n  level: shouty\n  format: xml\ncoach:\n  max_tokens: 0\n")

	_, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "unknown log level")
	assert.Contains(t, msg, "log format")
	assert.Contains(t, msg, "max_tokens")
}

func TestDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	p, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aipath", "config.yaml"), p)
}
