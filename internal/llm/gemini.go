package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type geminiBackend struct {
	client *genai.Client
	model  string
}

func newGemini(ctx context.Context, ep Endpoint) (*geminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:  ep.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if ep.BaseURL != "" {
		cc.HTTPOptions.BaseURL = ep.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiBackend{client: client, model: resolveModel(Gemini, ep.Model)}, nil
}

func (b *geminiBackend) ModelID() string { return b.model }

func (b *geminiBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Schema == nil {
		return nil, errNoSchema
	}
	gc := &genai.GenerateContentConfig{
		MaxOutputTokens:    int32(req.MaxTokens),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: req.Schema.Definition,
	}
	if req.System != "" {
		gc.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		gc.Temperature = &t
	}

	result, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(req.Prompt), gc)
	if err != nil {
		return nil, geminiError(err)
	}

	r := reply{text: result.Text(), model: result.ModelVersion}
	if r.model == "" {
		r.model = b.model
	}
	if u := result.UsageMetadata; u != nil {
		r.usage = Usage{InputTokens: int(u.PromptTokenCount), OutputTokens: int(u.CandidatesTokenCount)}
	}
	if len(result.Candidates) > 0 {
		r.truncated = result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	}
	return finish(Gemini, req, r)
}

// geminiError classifies SDK failures. The SDK returns APIError by value.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return statusError(Gemini, apiErr.Code, err)
	}
	return transportError(Gemini, err)
}
