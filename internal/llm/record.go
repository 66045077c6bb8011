package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/store"
)

// EventLog receives one event per call.
type EventLog interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type recording struct {
	inner    Provider
	provider string
	events   EventLog
	log      *zap.Logger
}

// WithRecording writes every call, failed or not, to events. A nil events
// only logs.
func WithRecording(p Provider, provider string, events EventLog, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &recording{inner: p, provider: provider, events: events, log: log}
}

func (r *recording) ModelID() string { return r.inner.ModelID() }

func (r *recording) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     req.Purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		var e *Error
		if errors.As(err, &e) && len(e.Content) > 0 {
			ev.ResponseBody = string(e.Content)
		}
	}

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		r.log.Warn("llm call failed", append(fields, zap.Error(err))...)
	} else {
		r.log.Debug("llm call", fields...)
	}

	if r.events != nil {
		// The caller's context may already be cancelled; the event is still
		// worth keeping.
		if lerr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); lerr != nil {
			r.log.Warn("record llm call", zap.Error(lerr))
		}
	}
	return resp, err
}

// renderRequest is the request as shown by `aipath llm view`.
func renderRequest(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		b.WriteString("[" + label + "]\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	if req.System != "" {
		section("system", req.System)
	}
	section("user", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
