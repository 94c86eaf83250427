package evaluator

import "github.com/abhisek/skillpath/internal/llm"

// GradeSchema defines the JSON schema for LLM answer grading responses.
var GradeSchema = &llm.Schema{
	Name:        "answer-grade",
	Description: "Graded assessment of a learner's free-form answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Correctness and completeness of the answer from 0.0 (wrong or empty) to 1.0 (fully correct)",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two sentences of feedback for the learner",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}
