package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// openaiBackend serves OpenAI and OpenRouter, which speaks the same API.
type openaiBackend struct {
	name   string
	client *openai.Client
	model  string
}

func newOpenAI(name string, ep Endpoint) *openaiBackend {
	cfg := openai.DefaultConfig(ep.APIKey)
	switch {
	case ep.BaseURL != "":
		cfg.BaseURL = ep.BaseURL
	case name == OpenRouter:
		cfg.BaseURL = openRouterBaseURL
	}
	return &openaiBackend{
		name:   name,
		client: openai.NewClientWithConfig(cfg),
		model:  ep.Model,
	}
}

func (b *openaiBackend) ModelID() string { return b.model }

func (b *openaiBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Schema == nil {
		return nil, errNoSchema
	}
	schema, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               b.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(schema),
				Strict:      true,
			},
		},
	})
	if err != nil {
		return nil, b.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: KindInvalid, Provider: b.name, Err: errors.New("no choices in reply")}
	}

	choice := resp.Choices[0]
	return finish(b.name, req, reply{
		text: choice.Message.Content,
		usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
		model:     resp.Model,
		truncated: choice.FinishReason == openai.FinishReasonLength,
	})
}

func (b *openaiBackend) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(b.name, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(b.name, reqErr.HTTPStatusCode, err)
	}
	return transportError(b.name, err)
}
