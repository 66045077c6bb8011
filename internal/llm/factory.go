package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds the configured provider. Calls are retried and every
// attempt is recorded to events.
func NewProvider(ctx context.Context, cfg Config, events EventLog, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	switch cfg.Provider {
	case Anthropic:
		base = newAnthropic(cfg.Anthropic)
	case OpenAI, OpenRouter:
		base = newOpenAI(cfg.Provider, *cfg.endpoint(cfg.Provider))
	case Gemini:
		g, err := newGemini(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
		}
		base = g
	case Mock:
		base = NewMockProvider()
	}

	recorded := WithRecording(base, cfg.Provider, events, log)
	return WithRetry(recorded, cfg.Retry, cfg.Timeout), nil
}
