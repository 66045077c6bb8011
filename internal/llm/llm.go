// Package llm asks a language model for JSON matching a schema. Every call
// is one system prompt plus one user prompt, and the reply is validated
// before it is returned.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Provider generates schema-conforming JSON.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, before any provider-side aliasing.
	ModelID() string
}

// Request is a single structured-output call.
type Request struct {
	// Purpose labels the call in the request log.
	Purpose string

	System string
	Prompt string

	// Schema is required; the reply is rejected unless it validates.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema.
type Schema struct {
	// Name is kebab-case, e.g. "career-advice". OpenAI uses it as the
	// response format name.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a validated reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the call as reported by the provider,
	// often a dated snapshot of ModelID.
	Model string
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

var errNoSchema = errors.New("request has no schema")

// reply is a backend's raw answer before validation.
type reply struct {
	text      string
	usage     Usage
	model     string
	truncated bool
}

// finish validates a backend reply against the request schema.
func finish(provider string, req Request, r reply) (*Response, error) {
	content := json.RawMessage(strings.TrimSpace(r.text))
	if r.truncated {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: content}
	}
	if err := validate(req.Schema, content); err != nil {
		return nil, &Error{Kind: KindInvalid, Provider: provider, Content: content, Err: err}
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model}, nil
}
