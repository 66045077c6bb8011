// Package coach asks an LLM for personalised guidance on a recommended
// career. Scoring never depends on it.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/aipath/internal/llm"
	"github.com/abhisek/aipath/internal/scoring"
)

// Purpose labels coach requests in the LLM event log.
const Purpose = "coach"

// Config holds advice generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults for advice generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   768,
		Temperature: 0.6,
		Timeout:     45 * time.Second,
	}
}

// Resource is a pointer to something worth reading or doing.
type Resource struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Advice is personalised guidance for one assessment result.
type Advice struct {
	Summary   string     `json:"summary"`
	Actions   []string   `json:"actions"`
	Resources []Resource `json:"resources"`
	Watchout  string     `json:"watchout"`
}

// Service generates advice through an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an advice service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Advise requests guidance for res. It blocks until the provider answers,
// the configured timeout elapses or ctx is cancelled.
func (s *Service) Advise(ctx context.Context, res scoring.Result) (*Advice, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		Purpose:     Purpose,
		System:      systemPrompt,
		Prompt:      buildUserMessage(res),
		Schema:      AdviceSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("advice generation: %w", err)
	}

	var out Advice
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse advice response: %w", err)
	}
	if out.Summary == "" || len(out.Actions) == 0 {
		return nil, fmt.Errorf("parse advice response: missing summary or actions")
	}
	return &out, nil
}
