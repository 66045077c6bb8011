package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, vk := range vendorKeys {
		t.Setenv(vk.env, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)

	// Every default model has a price.
	for _, name := range []string{Anthropic, OpenAI, Gemini, OpenRouter} {
		model := resolveModel(name, cfg.endpoint(name).Model)
		_, ok := LookupCost(model)
		assert.True(t, ok, "%s default %s", name, model)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = Gemini
	assert.EqualError(t, cfg.Validate(), "AIPATH_GEMINI_API_KEY is required for the gemini provider")

	cfg.Gemini.APIKey = "g"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = Mock
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "llama"
	assert.ErrorContains(t, cfg.Validate(), `unknown LLM provider "llama"`)
}

func TestDiscoverConfig(t *testing.T) {
	clearVendorKeys(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, OpenAI, cfg.Provider, "OpenAI is tried before Anthropic")
	assert.Equal(t, "sk-oai", cfg.OpenAI.APIKey)
	assert.Empty(t, cfg.Anthropic.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = Anthropic
	_, err := NewProvider(context.Background(), cfg, nil, nil)
	assert.ErrorContains(t, err, "AIPATH_ANTHROPIC_API_KEY")

	tests := []struct {
		provider string
		model    string
	}{
		{Anthropic, "claude-haiku-4-5"},
		{OpenAI, "gpt-4o-mini"},
		{OpenRouter, "google/gemini-2.5-flash"},
		{Gemini, "gemini-2.5-flash"},
		{Mock, "mock"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Provider = tt.provider
		if ep := cfg.endpoint(tt.provider); ep != nil {
			ep.APIKey = "test-key"
		}
		p, err := NewProvider(context.Background(), cfg, nil, nil)
		require.NoError(t, err, tt.provider)
		assert.Equal(t, tt.model, p.ModelID(), tt.provider)
	}
}

func TestMockProviderFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = Mock
	cfg.Retry.InitialWait = time.Millisecond
	cfg.Retry.MaxWait = time.Millisecond
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), answerRequest())
	assert.True(t, IsKind(err, KindUnavailable))
}
