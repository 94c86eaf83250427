package questionbank

import (
	"strconv"
	"strings"
)

// NormalizeAnswer trims surrounding whitespace, collapses internal runs of
// whitespace and folds case.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// MatchesKey reports whether response selects the correct choice of a
// multiple-choice question. The response may be the choice text or its
// 1-based index.
func MatchesKey(q *Question, response string) bool {
	response = strings.TrimSpace(response)
	if response == "" {
		return false
	}

	key := NormalizeAnswer(q.Answer)

	if idx, err := strconv.Atoi(response); err == nil && idx >= 1 && idx <= len(q.Choices) {
		if NormalizeAnswer(q.Choices[idx-1]) == key {
			return true
		}
	}

	return NormalizeAnswer(response) == key
}
