package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, status int, body map[string]any) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 18},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	}
}

func TestAnthropicProvider_GradesWithSchema(t *testing.T) {
	p := newTestAnthropicProvider(t, http.StatusOK,
		anthropicMessage(`{"score":0.75,"feedback":"covers indexes but not locking"}`, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You grade technical interview answers.",
		Messages:  []Message{{Role: RoleUser, Content: "Explain database indexes."}},
		Schema:    gradeSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.TotalTokens != 138 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("StopReason = %q, want end", resp.StopReason)
	}
	var grade struct{ Score float64 }
	if err := json.Unmarshal(resp.Content, &grade); err != nil || grade.Score != 0.75 {
		t.Errorf("content = %s (%v)", resp.Content, err)
	}
}

func TestAnthropicProvider_TruncatedStructuredOutput(t *testing.T) {
	p := newTestAnthropicProvider(t, http.StatusOK, anthropicMessage(`{"score":0.7,"feedb`, "max_tokens"))

	_, err := p.Generate(context.Background(), Request{Schema: gradeSchema(), MaxTokens: 8})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("error = %T (%v), want *ErrMaxTokensExceeded", err, err)
	}
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   string
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, "rate_limit_error", func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, "api_error", func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
		{http.StatusUnauthorized, "authentication_error", func(err error) bool { var e *ErrRejected; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			p := newTestAnthropicProvider(t, tt.status, anthropicError(tt.kind))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "hi"}},
				MaxTokens: 16,
			})
			if err == nil || !tt.check(err) {
				t.Fatalf("status %d mapped to %T (%v)", tt.status, err, err)
			}
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := map[string]string{
		"claude-haiku":            "claude-haiku-4-5-20251001",
		"claude-sonnet":           "claude-sonnet-4-5-20250929",
		"claude-3-5-haiku-latest": "claude-3-5-haiku-latest",
	}
	for in, want := range tests {
		if got := resolveModel(in, anthropicModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}
