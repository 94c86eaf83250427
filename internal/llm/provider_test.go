package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"testing"
)

func TestMockProvider_ReturnsCannedResponsesInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"score":0.9}`), Usage: Usage{InputTokens: 12, OutputTokens: 4, TotalTokens: 16}},
		MockResponse{Content: json.RawMessage(`{"score":0.2}`)},
	)
	ctx := context.Background()

	first, err := mock.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "grade one"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"score":0.9}` {
		t.Errorf("first content = %s", first.Content)
	}
	if first.Usage.TotalTokens != 16 {
		t.Errorf("first usage = %+v", first.Usage)
	}
	if first.Model != "mock" || first.StopReason != "end" {
		t.Errorf("model/stop = %q/%q", first.Model, first.StopReason)
	}

	second, err := mock.Generate(ctx, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"score":0.2}` {
		t.Errorf("second content = %s", second.Content)
	}

	_, err = mock.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("drained queue error = %T, want *ErrProviderUnavailable", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3", mock.CallCount())
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{System: "grader"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("error = %T, want *ErrRateLimit", err)
	}
	if mock.Calls[0].System != "grader" {
		t.Errorf("recorded system = %q", mock.Calls[0].System)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("PurposeFrom(empty) = %q, want unknown", p)
	}
	ctx = WithPurpose(ctx, PurposeResume)
	if p := PurposeFrom(ctx); p != PurposeResume {
		t.Fatalf("PurposeFrom = %q, want %q", p, PurposeResume)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", &ErrRateLimit{}, true},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("502")}, true},
		{"network", errors.New("connection reset"), true},
		{"invalid", &ErrInvalidResponse{Err: errors.New("bad")}, false},
		{"truncated", &ErrMaxTokensExceeded{}, false},
		{"rejected", &ErrRejected{Status: 401, Err: errors.New("bad key")}, false},
		{"cancelled", context.Canceled, false},
		{"circuit open", &ErrProviderUnavailable{Err: ErrCircuitOpen}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "carrier-pigeon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SKILLPATH_LLM_PROVIDER", "SKILLPATH_ANTHROPIC_API_KEY", "SKILLPATH_OPENAI_API_KEY",
		"SKILLPATH_GEMINI_API_KEY", "SKILLPATH_OPENROUTER_API_KEY", "SKILLPATH_LLM_TIMEOUT",
		"SKILLPATH_LLM_RATE", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("SKILLPATH_LLM_PROVIDER", "openrouter")
	t.Setenv("SKILLPATH_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("SKILLPATH_OPENROUTER_MODEL", "anthropic/claude-3-haiku")
	t.Setenv("SKILLPATH_LLM_TIMEOUT", "5s")
	t.Setenv("SKILLPATH_LLM_RATE", "0")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "sk-or" || cfg.OpenRouter.Model != "anthropic/claude-3-haiku" {
		t.Errorf("OpenRouter = %+v", cfg.OpenRouter)
	}
	if cfg.Timeout.String() != "5s" {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.Resilience.RatePerSecond != 0 {
		t.Errorf("RatePerSecond = %d, want 0", cfg.Resilience.RatePerSecond)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("DiscoverConfig() found a provider with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig() found nothing")
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q, want openai (probed before anthropic)", cfg.Provider)
	}
}

func TestNewProviderFromEnv_NotConfigured(t *testing.T) {
	clearProviderEnv(t)
	_, err := NewProviderFromEnv(context.Background(), nil, nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestNewProvider_WrapsAndCloses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID() = %q", p.ModelID())
	}
	c, ok := p.(io.Closer)
	if !ok {
		t.Fatalf("provider %T does not implement io.Closer", p)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("provider = %T, want *MockProvider", p)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("LookupCost(gpt-4o-mini) = nil")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Cost = %v, want 0.75", got)
	}
	if LookupCost("openai/gpt-4o-mini") == nil {
		t.Error("vendor-prefixed ID not resolved")
	}
	if LookupCost("homegrown-7b") != nil {
		t.Error("unknown model has a price")
	}
}
