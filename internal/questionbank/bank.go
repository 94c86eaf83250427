// Package questionbank loads and validates the pool of assessment
// questions the adaptive quiz draws from.
package questionbank

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/bank.yaml
var defaultBankYAML []byte

// bankFile is the on-disk YAML layout of a question bank.
type bankFile struct {
	Version   int        `yaml:"version"`
	Questions []Question `yaml:"questions"`
}

// Bank is an ordered, read-only pool of questions. File order is preserved
// because selection falls back to pool order.
type Bank struct {
	questions []*Question
	byID      map[string]*Question
}

// New builds a bank from questions without validating them.
func New(questions []Question) *Bank {
	b := &Bank{
		questions: make([]*Question, 0, len(questions)),
		byID:      make(map[string]*Question, len(questions)),
	}
	for i := range questions {
		q := questions[i]
		b.questions = append(b.questions, &q)
		if _, dup := b.byID[q.ID]; !dup {
			b.byID[q.ID] = &q
		}
	}
	return b
}

// Parse decodes and validates a YAML question bank.
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if err := Validate(f.Questions); err != nil {
		return nil, err
	}
	return New(f.Questions), nil
}

// Load reads and validates the question bank at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Default returns the question bank compiled into the binary.
func Default() *Bank {
	b, err := Parse(defaultBankYAML)
	if err != nil {
		panic(fmt.Sprintf("questionbank: embedded bank is invalid: %v", err))
	}
	return b
}

// LoadOrDefault loads the bank at path, or the embedded bank when path is empty.
func LoadOrDefault(path string) (*Bank, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Questions returns the pool in file order. Callers must not modify the
// returned questions.
func (b *Bank) Questions() []*Question {
	out := make([]*Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Get returns the question with the given ID.
func (b *Bank) Get(id string) (*Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// SkillIDs returns every skill referenced by the bank, in first-seen order.
func (b *Bank) SkillIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, q := range b.questions {
		for _, s := range q.Skills {
			if !seen[s.SkillID] {
				seen[s.SkillID] = true
				ids = append(ids, s.SkillID)
			}
		}
	}
	return ids
}

// ForSkill returns the questions that exercise skillID, in pool order.
func (b *Bank) ForSkill(skillID string) []*Question {
	var out []*Question
	for _, q := range b.questions {
		if _, ok := q.Impact(skillID); ok {
			out = append(out, q)
		}
	}
	return out
}
