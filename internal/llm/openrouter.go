package llm

import (
	"cmp"
	"fmt"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider returns an OpenAI-compatible provider for
// OpenRouter. Its model IDs are vendor-namespaced ("anthropic/claude-3-haiku")
// and used as given.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	return newOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cmp.Or(cfg.BaseURL, defaultOpenRouterBaseURL),
	}, nil), nil
}
