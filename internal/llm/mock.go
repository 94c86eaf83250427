package llm

import (
	"context"
	"encoding/json"
	"sync"
)

const mockModel = "mock"

// MockResponse is one scripted reply. A non-nil Err is returned instead
// of content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records requests.
// It backs tests and SKILLPATH_LLM_PROVIDER=mock. Once the script runs
// out every call fails as unavailable, so graders fall back to their
// heuristic path.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

// NewMockProvider returns a provider that replays script.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	reply := m.script[0]
	m.script = m.script[1:]
	if reply.Err != nil {
		return nil, reply.Err
	}
	return completion{
		text:  string(reply.Content),
		model: mockModel,
		stop:  StopEnd,
		usage: reply.Usage,
	}.response(Request{})
}

func (m *MockProvider) ModelID() string {
	return mockModel
}

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// CallCount returns how many requests have been made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
