package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RetryProvider re-issues failed requests. Transient failures are retried
// up to MaxAttempts with exponential backoff; a response that fails schema
// validation is resampled once.
type RetryProvider struct {
	inner   Provider
	backoff backoff
	max     int
	logger  *slog.Logger
}

// WithRetry wraps p with retries. One attempt or fewer returns p as is.
func WithRetry(p Provider, cfg RetryConfig, logger *slog.Logger) Provider {
	if cfg.MaxAttempts <= 1 {
		return p
	}
	return &RetryProvider{
		inner:   p,
		backoff: backoff{cfg: cfg, jitter: rand.Float64},
		max:     cfg.MaxAttempts,
		logger:  orDefault(logger),
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var budget resampleBudget
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.max || !budget.retryable(err) {
			return nil, err
		}

		wait := r.backoff.delay(attempt, err)
		r.logger.Debug("retrying llm request",
			"purpose", PurposeFrom(ctx), "attempt", attempt, "wait", wait, "error", err)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// resampleBudget tracks the single retry granted to invalid responses.
type resampleBudget struct {
	used bool
}

func (b *resampleBudget) retryable(err error) bool {
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		return IsTransient(err)
	}
	if b.used {
		return false
	}
	b.used = true
	return true
}

type backoff struct {
	cfg    RetryConfig
	jitter func() float64 // uniform in [0, 1)
}

// delay returns the wait after the given failed attempt (1-based). A
// server-supplied Retry-After wins over the computed wait.
func (b backoff) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(b.cfg.InitialWait)
	for range attempt - 1 {
		wait *= b.cfg.Multiplier
	}
	wait = min(wait, float64(b.cfg.MaxWait))

	// ±20%
	wait *= 0.8 + 0.4*b.jitter()
	return time.Duration(wait)
}
