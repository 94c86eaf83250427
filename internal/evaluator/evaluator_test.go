package evaluator

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/skillpath/internal/questionbank"
)

func mcQuestion() *questionbank.Question {
	return &questionbank.Question{
		ID:      "mc",
		Type:    questionbank.TypeMultipleChoice,
		Choices: []string{"var", "let", "const"},
		Answer:  "const",
	}
}

func TestHeuristicMultipleChoice(t *testing.T) {
	q := mcQuestion()
	tests := []struct {
		response string
		want     float64
	}{
		{"const", 1.0},
		{"  CONST ", 1.0},
		{"3", 1.0},
		{"let", 0.0},
		{"", 0.0},
	}
	for _, tt := range tests {
		if got := Score(q, questionbank.Answer{Response: tt.response}); got != tt.want {
			t.Errorf("Score(%q) = %v, want %v", tt.response, got, tt.want)
		}
	}
}

func TestHeuristicCode(t *testing.T) {
	q := &questionbank.Question{Type: questionbank.TypeCode}
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{30 * time.Second, 1.0},
		{119 * time.Second, 1.0},
		{120 * time.Second, 0.5},
		{10 * time.Minute, 0.5},
	}
	for _, tt := range tests {
		if got := Score(q, questionbank.Answer{Elapsed: tt.elapsed}); got != tt.want {
			t.Errorf("Score(elapsed=%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestHeuristicTextLength(t *testing.T) {
	scenario := &questionbank.Question{Type: questionbank.TypeScenario}
	short := &questionbank.Question{Type: questionbank.TypeShortAnswer}

	tests := []struct {
		name     string
		q        *questionbank.Question
		response string
		want     float64
	}{
		{"scenario 21 chars", scenario, "abcdefghijklmnopqrstu", 0.8},
		{"scenario 20 chars", scenario, "abcdefghijklmnopqrst", 0.4},
		{"scenario padded", scenario, "   short answer   ", 0.4},
		{"scenario padding counts", scenario, "     abcdefghijklmnop", 0.8},
		{"short spaces only", short, "           ", 0.7},
		{"short 11 chars", short, "abcdefghijk", 0.7},
		{"short 10 chars", short, "abcdefghij", 0.3},
		{"short multibyte", short, "ééééééééééé", 0.7},
	}
	for _, tt := range tests {
		if got := Score(tt.q, questionbank.Answer{Response: tt.response}); got != tt.want {
			t.Errorf("%s: Score = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHeuristicUnknownType(t *testing.T) {
	q := &questionbank.Question{Type: "essay"}
	if got := Score(q, questionbank.Answer{Response: "anything"}); got != 0.5 {
		t.Errorf("Score = %v, want 0.5", got)
	}
}

func TestHeuristicImplementsEvaluator(t *testing.T) {
	var e Evaluator = Heuristic{}
	got, err := e.Evaluate(context.Background(), mcQuestion(), questionbank.Answer{Response: "const"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 1.0 {
		t.Errorf("Evaluate = %v, want 1.0", got)
	}
}

func TestNew(t *testing.T) {
	if _, err := New("heuristic", nil, nil); err != nil {
		t.Errorf("New(heuristic): %v", err)
	}
	if _, err := New("llm", nil, nil); err == nil {
		t.Error("New(llm) without provider should fail")
	}
	if _, err := New("oracle", nil, nil); err == nil {
		t.Error("New(oracle) should fail")
	}
}
