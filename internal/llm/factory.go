package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/skillpath/internal/store"
)

// ErrNotConfigured is returned by NewProviderFromEnv when no provider is
// selected and no vendor API key is present.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider creates a Provider from configuration. The result is wrapped
// as caller → retry → resilience → logging → vendor SDK, and implements
// io.Closer.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo, logger)
	}
	resilient := WithResilience(p, cfg.Provider, cfg.Resilience, logger)
	p = WithRetry(resilient, cfg.Retry, logger)
	if cfg.Timeout > 0 {
		p = &timeoutProvider{inner: p, timeout: cfg.Timeout}
	}

	return &managedProvider{Provider: p, close: resilient.Close}, nil
}

// NewProviderFromEnv resolves configuration from SKILLPATH_* variables,
// falling back to the vendors' standard key variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, ErrNotConfigured
		}
		discovered.Timeout = cfg.Timeout
		discovered.Resilience = cfg.Resilience
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }

type managedProvider struct {
	Provider
	close func() error
}

func (m *managedProvider) Close() error { return m.close() }
