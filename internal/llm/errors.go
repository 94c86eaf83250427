package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider (or the local limiter) refused the
// request because of rate limiting.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable, or
// short-circuited by the breaker.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrRejected is a client error (4xx other than 429) from the provider.
// Bad keys and malformed requests do not get better on retry.
type ErrRejected struct {
	Status int
	Err    error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("LLM request rejected (status %d): %v", e.Status, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// ErrCircuitOpen is wrapped by ErrProviderUnavailable when the breaker
// rejects a call without reaching the provider.
var ErrCircuitOpen = errors.New("circuit open")

// IsTransient reports whether err is worth retrying or counting against
// the circuit breaker.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	var invalid *ErrInvalidResponse
	var rejected *ErrRejected
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrCircuitOpen):
		return false
	case errors.As(err, &maxTok), errors.As(err, &invalid), errors.As(err, &rejected):
		return false
	}
	return true
}

// mapStatus classifies an HTTP status from any vendor SDK.
func mapStatus(code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case code >= 500, code == 0:
		return &ErrProviderUnavailable{Err: err}
	default:
		return &ErrRejected{Status: code, Err: err}
	}
}
