// Package evaluator grades a learner's answer to a question, producing a
// correctness score in [0,1].
package evaluator

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/abhisek/skillpath/internal/questionbank"
)

// Evaluator scores an answer to a question in [0,1].
type Evaluator interface {
	Evaluate(ctx context.Context, q *questionbank.Question, a questionbank.Answer) (float64, error)
}

// Heuristic proxy thresholds. These approximate effort for question types
// that have no answer key; they do not check correctness.
const (
	CodeTimeLimit = 120 * time.Second

	scenarioMinLength    = 20
	shortAnswerMinLength = 10
)

// Heuristic grades answers without external help. Multiple-choice answers
// are checked against the key; the other types use proxies: elapsed time
// for code, text length for scenario and short-answer.
type Heuristic struct{}

// Evaluate implements Evaluator. It never returns an error.
func (Heuristic) Evaluate(_ context.Context, q *questionbank.Question, a questionbank.Answer) (float64, error) {
	return Score(q, a), nil
}

// Score applies the heuristic rules to a single answer.
func Score(q *questionbank.Question, a questionbank.Answer) float64 {
	switch q.Type {
	case questionbank.TypeMultipleChoice:
		if questionbank.MatchesKey(q, a.Response) {
			return 1.0
		}
		return 0.0

	case questionbank.TypeCode:
		// Rewards speed only; a fast wrong answer still scores 1.0.
		if a.Elapsed < CodeTimeLimit {
			return 1.0
		}
		return 0.5

	case questionbank.TypeScenario:
		if answerLength(a.Response) > scenarioMinLength {
			return 0.8
		}
		return 0.4

	case questionbank.TypeShortAnswer:
		if answerLength(a.Response) > shortAnswerMinLength {
			return 0.7
		}
		return 0.3

	default:
		return 0.5
	}
}

// answerLength counts every rune of the response as typed, whitespace
// included.
func answerLength(s string) int {
	return utf8.RuneCountInString(s)
}

// Clamp bounds a score to [0,1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
