package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/skillpath/internal/llm"
)

// Grader kinds accepted by New.
const (
	KindHeuristic = "heuristic"
	KindLLM       = "llm"
)

// New returns the evaluator for kind. The llm kind requires a provider.
func New(kind string, provider llm.Provider, logger *slog.Logger) (Evaluator, error) {
	switch kind {
	case "", KindHeuristic:
		return Heuristic{}, nil
	case KindLLM:
		if provider == nil {
			return nil, fmt.Errorf("grader %q requires an LLM provider", kind)
		}
		return NewLLMGrader(provider, DefaultGraderConfig(), logger), nil
	default:
		return nil, fmt.Errorf("unknown grader: %q", kind)
	}
}
