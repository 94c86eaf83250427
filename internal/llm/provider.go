package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the grader and resume analyzer talk to.
type Provider interface {
	// Generate sends a prompt and returns the model output. When req.Schema
	// is set the provider asks for structured output and the returned
	// Content has already been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System string

	// Messages is the conversation. Grading and resume analysis are
	// single-turn, so this usually holds one user message.
	Messages []Message

	// Schema, when set, constrains the response to JSON matching it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero means provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name is kebab-case, e.g. "answer-grade". It doubles as the cache key
	// for compiled schemas.
	Name string

	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// StopReason says why the model stopped, normalized across vendors.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
	StopFiltered  StopReason = "filtered" // refusal or safety block
)

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	StopReason StopReason
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// completion is a vendor reply reduced to the fields every adapter reports.
type completion struct {
	text  string
	model string
	stop  StopReason
	usage Usage
}

// response checks c against the request's schema. Structured output cut
// off at the token limit is reported as truncated rather than invalid.
func (c completion) response(req Request) (*Response, error) {
	content := json.RawMessage(c.text)
	if req.Schema != nil {
		if c.stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		var err error
		if content, err = validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: c.usage, Model: c.model, StopReason: c.stop}, nil
}
