package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

type retrying struct {
	inner   Provider
	cfg     RetryConfig
	timeout time.Duration

	// wait is replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// WithRetry retries unavailable and rate-limited calls with jittered
// exponential backoff, and an invalid reply once. Each attempt gets its own
// timeout when timeout is positive.
func WithRetry(p Provider, cfg RetryConfig, timeout time.Duration) Provider {
	return &retrying{inner: p, cfg: cfg, timeout: timeout, wait: sleep}
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	retriedInvalid := false

	for attempt := 0; ; attempt++ {
		resp, err := r.attempt(ctx, req)
		if err == nil {
			return resp, nil
		}

		var e *Error
		if !errors.As(err, &e) || attempt+1 >= attempts {
			return nil, err
		}
		switch e.Kind {
		case KindUnavailable, KindRateLimited:
		case KindInvalid:
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		default:
			return nil, err
		}

		if werr := r.wait(ctx, r.backoff(attempt, e)); werr != nil {
			return nil, werr
		}
	}
}

func (r *retrying) attempt(ctx context.Context, req Request) (*Response, error) {
	if r.timeout <= 0 {
		return r.inner.Generate(ctx, req)
	}
	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.inner.Generate(actx, req)
	// An attempt that ran out of its own budget is retryable; one whose
	// caller gave up is not.
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		err = &Error{
			Kind:     KindUnavailable,
			Provider: r.inner.ModelID(),
			Err:      fmt.Errorf("no reply within %s: %w", r.timeout, err),
		}
	}
	return resp, err
}

func (r *retrying) backoff(attempt int, e *Error) time.Duration {
	if e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	if r.cfg.MaxWait > 0 {
		d = math.Min(d, float64(r.cfg.MaxWait))
	}
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(d, 0))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
