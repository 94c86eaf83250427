package session

import (
	"time"

	"github.com/abhisek/skillpath/internal/mastery"
)

// State is the mutable state of one assessment session. It is owned by a
// single Session and is not safe for concurrent use.
type State struct {
	// ID identifies the session in persisted events.
	ID string

	// Estimates are the current per-skill estimates.
	Estimates *mastery.Estimates

	// History lists attempted question IDs in answer order.
	History []string

	// Answered counts graded answers.
	Answered int

	// MaxQuestions caps the session length.
	MaxQuestions int

	// StartTime is when the session began.
	StartTime time.Time

	attempted map[string]bool
}

// NewState creates the state for a fresh session.
func NewState(id string, est *mastery.Estimates, maxQuestions int) *State {
	if est == nil {
		est = mastery.NewEstimates()
	}
	return &State{
		ID:           id,
		Estimates:    est,
		MaxQuestions: maxQuestions,
		StartTime:    time.Now(),
		attempted:    make(map[string]bool),
	}
}

// Attempted reports whether questionID has already been answered.
func (s *State) Attempted(questionID string) bool {
	return s.attempted[questionID]
}

// record appends a graded answer to the history.
func (s *State) record(questionID string) {
	s.History = append(s.History, questionID)
	s.attempted[questionID] = true
	s.Answered++
}
