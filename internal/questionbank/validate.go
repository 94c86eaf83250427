package questionbank

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural problem found in a question bank.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

// Validate performs structural checks on questions and reports all
// problems at once, or nil if the set is valid.
func Validate(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "bank contains no questions")
	}

	ids := make(map[string]bool, len(questions))
	for i, q := range questions {
		label := q.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			errs = append(errs, fmt.Sprintf("question %s has no ID", label))
		} else if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true

		if !q.Type.Known() {
			errs = append(errs, fmt.Sprintf("question %q has unknown type %q", label, q.Type))
		}
		if q.Difficulty < 1 || q.Difficulty > 10 {
			errs = append(errs, fmt.Sprintf("question %q difficulty %d out of range 1-10", label, q.Difficulty))
		}
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %q has an empty prompt", label))
		}
		if len(q.Skills) == 0 {
			errs = append(errs, fmt.Sprintf("question %q exercises no skills", label))
		}

		skills := make(map[string]bool, len(q.Skills))
		for _, s := range q.Skills {
			if s.SkillID == "" {
				errs = append(errs, fmt.Sprintf("question %q has a skill impact with no skill ID", label))
				continue
			}
			if skills[s.SkillID] {
				errs = append(errs, fmt.Sprintf("question %q lists skill %q more than once", label, s.SkillID))
			}
			skills[s.SkillID] = true
			if s.Impact < 1 || s.Impact > 10 {
				errs = append(errs, fmt.Sprintf("question %q impact %d for skill %q out of range 1-10", label, s.Impact, s.SkillID))
			}
		}

		if q.Type == TypeMultipleChoice {
			errs = append(errs, validateChoices(label, q)...)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateChoices(label string, q Question) []string {
	if len(q.Choices) < 2 {
		return []string{fmt.Sprintf("question %q needs at least 2 choices", label)}
	}
	if strings.TrimSpace(q.Answer) == "" {
		return []string{fmt.Sprintf("question %q has no answer key", label)}
	}
	key := NormalizeAnswer(q.Answer)
	for _, c := range q.Choices {
		if NormalizeAnswer(c) == key {
			return nil
		}
	}
	return []string{fmt.Sprintf("question %q answer %q is not one of its choices", label, q.Answer)}
}

// CheckSkills reports skill references that are not in known.
func CheckSkills(b *Bank, known func(string) bool) error {
	var errs []string
	for _, q := range b.questions {
		for _, s := range q.Skills {
			if !known(s.SkillID) {
				errs = append(errs, fmt.Sprintf("question %q references unknown skill %q", q.ID, s.SkillID))
			}
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
