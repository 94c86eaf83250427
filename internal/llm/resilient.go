package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/ratelimit"
)

// ResilientProvider guards a provider with a circuit breaker and a
// client-side token bucket. When the breaker is open calls fail fast with
// ErrProviderUnavailable, which the grader turns into a heuristic score.
type ResilientProvider struct {
	inner   Provider
	name    string
	breaker circuitbreaker.CircuitBreaker[*Response]
	limiter ratelimit.RateLimiter
	logger  *slog.Logger
}

// WithResilience wraps p using cfg. A zero FailureThreshold disables the
// breaker; a zero RatePerSecond disables the limiter.
func WithResilience(p Provider, name string, cfg ResilienceConfig, logger *slog.Logger) *ResilientProvider {
	rp := &ResilientProvider{inner: p, name: name, logger: orDefault(logger)}

	if cfg.FailureThreshold > 0 {
		threshold := cfg.FailureThreshold
		timeout := cfg.OpenTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		rp.breaker = circuitbreaker.New[*Response](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    30 * time.Second,
			Timeout:     timeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return int(counts.ConsecutiveFailures) >= threshold
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				rp.logger.Warn("llm circuit breaker state change",
					"provider", name,
					"from", from.String(),
					"to", to.String())
			},
		})
	}

	if cfg.RatePerSecond > 0 {
		rp.limiter = ratelimit.New(&ratelimit.Config{
			Rate:     cfg.RatePerSecond,
			Burst:    cfg.RatePerSecond * 3,
			Interval: time.Second,
		})
	}

	return rp
}

func (p *ResilientProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if p.limiter != nil && !p.limiter.Allow(ctx, p.name) {
		return nil, &ErrRateLimit{Err: errors.New("client-side rate limit for " + p.name)}
	}
	if p.breaker == nil {
		return p.inner.Generate(ctx, req)
	}

	// Non-transient failures are answered outside the breaker so a run of
	// malformed responses cannot trip it.
	var permanent error
	resp, err := p.breaker.Execute(ctx, func(ctx context.Context) (*Response, error) {
		r, err := p.inner.Generate(ctx, req)
		if err != nil && !IsTransient(err) {
			permanent = err
			return nil, nil
		}
		return r, err
	})
	if permanent != nil {
		return nil, permanent
	}
	if err != nil {
		var unavail *ErrProviderUnavailable
		var rl *ErrRateLimit
		if errors.As(err, &unavail) || errors.As(err, &rl) || IsContextError(err) {
			return nil, err
		}
		// Anything else is the breaker rejecting the call.
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("%w: %v", ErrCircuitOpen, err)}
	}
	return resp, nil
}

func (p *ResilientProvider) ModelID() string {
	return p.inner.ModelID()
}

// Close releases the limiter's background resources.
func (p *ResilientProvider) Close() error {
	if p.limiter != nil {
		return p.limiter.Close()
	}
	return nil
}

// IsContextError reports whether err came from context cancellation.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
