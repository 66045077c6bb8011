package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in configuration.
const (
	Anthropic  = "anthropic"
	OpenAI     = "openai"
	Gemini     = "gemini"
	OpenRouter = "openrouter"
	Mock       = "mock"
)

// Providers lists the accepted values for Config.Provider.
var Providers = []string{Anthropic, OpenAI, Gemini, OpenRouter, Mock}

// Endpoint is how to reach one provider.
type Endpoint struct {
	APIKey string
	// Model is a model ID or one of the short aliases in models.go.
	Model string
	// BaseURL overrides the provider's API root; empty uses the default.
	BaseURL string
}

// Config selects and configures the provider.
type Config struct {
	Provider string

	Anthropic  Endpoint
	OpenAI     Endpoint
	Gemini     Endpoint
	OpenRouter Endpoint

	Retry RetryConfig

	// Timeout bounds a single attempt; retries get a fresh budget.
	Timeout time.Duration
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig has no provider selected and the cheapest capable model
// for each.
func DefaultConfig() Config {
	return Config{
		Anthropic:  Endpoint{Model: "claude-haiku"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		Gemini:     Endpoint{Model: "gemini-flash"},
		OpenRouter: Endpoint{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider has been selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// endpoint returns the settings for provider, or nil for mock and unknown
// names.
func (c *Config) endpoint(provider string) *Endpoint {
	switch provider {
	case Anthropic:
		return &c.Anthropic
	case OpenAI:
		return &c.OpenAI
	case Gemini:
		return &c.Gemini
	case OpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// Validate checks the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == Mock {
		return nil
	}
	ep := c.endpoint(c.Provider)
	if ep == nil {
		return fmt.Errorf("unknown LLM provider %q (want one of %s)", c.Provider, strings.Join(Providers, ", "))
	}
	if ep.APIKey == "" {
		return fmt.Errorf("AIPATH_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

// vendorKeys are the providers' own API key variables, in the order
// DiscoverConfig tries them.
var vendorKeys = []struct{ provider, env string }{
	{Gemini, "GEMINI_API_KEY"},
	{OpenAI, "OPENAI_API_KEY"},
	{Anthropic, "ANTHROPIC_API_KEY"},
	{OpenRouter, "OPENROUTER_API_KEY"},
}

// DiscoverConfig selects the first provider whose vendor API key variable
// is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, vk := range vendorKeys {
		if key := os.Getenv(vk.env); key != "" {
			cfg.Provider = vk.provider
			cfg.endpoint(vk.provider).APIKey = key
			return cfg, true
		}
	}
	return Config{}, false
}
