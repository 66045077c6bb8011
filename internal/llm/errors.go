package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies a provider failure.
type Kind int

const (
	// KindUnavailable is a network failure or a 5xx.
	KindUnavailable Kind = iota
	// KindRateLimited is a 429.
	KindRateLimited
	// KindRejected is any other 4xx: bad key, unknown model, bad parameters.
	KindRejected
	// KindInvalid is a reply that is not JSON or does not match the schema.
	KindInvalid
	// KindTruncated is a reply cut off at MaxTokens.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "request rejected"
	case KindInvalid:
		return "invalid response"
	case KindTruncated:
		return "response truncated at max tokens"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every provider for failures other than context
// cancellation.
type Error struct {
	Kind     Kind
	Provider string

	// RetryAfter is the server's requested delay, when it sent one.
	RetryAfter time.Duration

	// Content is the rejected reply for KindInvalid and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Provider + ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// statusError classifies an HTTP failure reported by a provider SDK.
func statusError(provider string, status int, err error) *Error {
	kind := KindRejected
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 500 || status == 0:
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Provider: provider, Err: err}
}

// transportError wraps a failure that never produced an HTTP status.
// Context errors pass through so callers can tell cancellation apart.
func transportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &Error{Kind: KindUnavailable, Provider: provider, Err: err}
}

// retryAfter parses a Retry-After header given in seconds or as a date.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
