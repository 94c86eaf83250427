package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/questionbank"
)

// GraderConfig holds configuration for the LLM grader.
type GraderConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultGraderConfig returns sensible defaults.
func DefaultGraderConfig() GraderConfig {
	return GraderConfig{
		MaxTokens:   256,
		Temperature: 0.2,
	}
}

// LLMGrader grades free-form answers with an LLM. Multiple-choice answers
// are always checked against the key. When the LLM call or its response
// fails, the answer is scored by the fallback evaluator instead.
type LLMGrader struct {
	provider llm.Provider
	cfg      GraderConfig
	fallback Evaluator
	logger   *slog.Logger
}

// NewLLMGrader creates an LLM grader that falls back to Heuristic.
func NewLLMGrader(provider llm.Provider, cfg GraderConfig, logger *slog.Logger) *LLMGrader {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGrader{
		provider: provider,
		cfg:      cfg,
		fallback: Heuristic{},
		logger:   logger,
	}
}

// gradeOutput is the raw LLM response.
type gradeOutput struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Evaluate implements Evaluator.
func (g *LLMGrader) Evaluate(ctx context.Context, q *questionbank.Question, a questionbank.Answer) (float64, error) {
	switch q.Type {
	case questionbank.TypeCode, questionbank.TypeScenario, questionbank.TypeShortAnswer:
	default:
		return g.fallback.Evaluate(ctx, q, a)
	}

	score, err := g.grade(ctx, q, a)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		g.logger.Warn("LLM grading failed, using heuristic score",
			"question", q.ID, "error", err)
		return g.fallback.Evaluate(ctx, q, a)
	}
	return score, nil
}

func (g *LLMGrader) grade(ctx context.Context, q *questionbank.Question, a questionbank.Answer) (float64, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGrading)

	userMsg, err := buildGradeMessage(q, a)
	if err != nil {
		return 0, fmt.Errorf("build grading prompt: %w", err)
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: gradeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      GradeSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return 0, fmt.Errorf("LLM grading failed: %w", err)
	}

	var raw gradeOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return 0, fmt.Errorf("failed to parse grading response: %w", err)
	}
	return Clamp(raw.Score), nil
}

const gradeSystemPrompt = `You are a senior software engineer grading answers in a skills assessment.

Instructions:
- Score how correct and complete the answer is, from 0.0 to 1.0.
- Judge substance, not length or style. An empty or off-topic answer scores 0.0.
- When a reference answer is given, accept any answer that is equivalent in meaning.
- For code, check that it would work for the task as stated. Minor syntax slips cost little.
- Keep feedback to one or two sentences.`

var gradeUserTemplate = template.Must(template.New("grade").Parse(`Question type: {{.Type}}
Difficulty: {{.Difficulty}}/10
Question: {{.Prompt}}
{{if .Reference}}Reference answer: {{.Reference}}
{{end}}
Learner's answer:
{{.Response}}`))

func buildGradeMessage(q *questionbank.Question, a questionbank.Answer) (string, error) {
	var buf bytes.Buffer
	err := gradeUserTemplate.Execute(&buf, map[string]any{
		"Type":       q.Type,
		"Difficulty": q.Difficulty,
		"Prompt":     q.Prompt,
		"Reference":  q.Answer,
		"Response":   a.Response,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
