package questionbank

import "time"

// Type describes how a question is answered and graded.
type Type string

const (
	TypeMultipleChoice Type = "multiple-choice"
	TypeCode           Type = "code"
	TypeScenario       Type = "scenario"
	TypeShortAnswer    Type = "short-answer"
)

// Known reports whether t is one of the recognized question types.
func (t Type) Known() bool {
	switch t {
	case TypeMultipleChoice, TypeCode, TypeScenario, TypeShortAnswer:
		return true
	}
	return false
}

// SkillImpact links a question to one skill it exercises. Impact (1-10)
// scales how strongly an answer moves that skill's estimate.
type SkillImpact struct {
	SkillID string `yaml:"skill"`
	Impact  int    `yaml:"impact"`
}

// Question is a single assessment item. Questions are immutable once the
// bank is loaded.
type Question struct {
	ID         string        `yaml:"id"`
	Type       Type          `yaml:"type"`
	Difficulty int           `yaml:"difficulty"`
	Skills     []SkillImpact `yaml:"skills"`

	// Prompt is the text shown to the learner.
	Prompt string `yaml:"prompt"`

	// Choices is populated only for multiple-choice questions.
	Choices []string `yaml:"choices,omitempty"`

	// Answer is the correct choice text for multiple-choice questions and
	// an optional reference answer for the other types.
	Answer string `yaml:"answer,omitempty"`

	// Explanation is shown after the learner answers.
	Explanation string `yaml:"explanation,omitempty"`
}

// Impact returns the impact weight this question carries for skillID.
func (q *Question) Impact(skillID string) (int, bool) {
	for _, s := range q.Skills {
		if s.SkillID == skillID {
			return s.Impact, true
		}
	}
	return 0, false
}

// PrimarySkill returns the skill with the highest impact, first wins on ties.
func (q *Question) PrimarySkill() string {
	best := -1
	id := ""
	for _, s := range q.Skills {
		if s.Impact > best {
			best = s.Impact
			id = s.SkillID
		}
	}
	return id
}

// Answer is a learner's response to one question. It is consumed by an
// evaluator and then discarded.
type Answer struct {
	QuestionID string
	Response   string
	Elapsed    time.Duration
}
