package session

import (
	"math"

	"github.com/abhisek/skillpath/internal/mastery"
)

// Termination defaults.
const (
	DefaultMaxQuestions        = 20
	DefaultConfidenceThreshold = 0.8
)

// TerminationPolicy decides when a session has gathered enough evidence.
type TerminationPolicy struct {
	MaxQuestions        int
	ConfidenceThreshold float64
}

// DefaultTerminationPolicy returns the standard 20-question, 0.8-confidence policy.
func DefaultTerminationPolicy() TerminationPolicy {
	return TerminationPolicy{
		MaxQuestions:        DefaultMaxQuestions,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// ShouldStop reports whether the session should end: once the answered
// count reaches the state's maximum (the policy's when the state sets
// none), or once the confidence of the estimates reaches the threshold.
// With no tracked skills the confidence check never fires.
func (p TerminationPolicy) ShouldStop(s *State) bool {
	limit := s.MaxQuestions
	if limit <= 0 {
		limit = p.MaxQuestions
	}
	if s.Answered >= limit {
		return true
	}
	if s.Estimates.Len() == 0 {
		return false
	}
	return Confidence(s.Estimates) >= p.ConfidenceThreshold
}

// Confidence is the mean over tracked skills of 1 - |75 - e|/75: 1.0 when
// every estimate sits on the target proficiency. Returns 0 when empty.
func Confidence(est *mastery.Estimates) float64 {
	if est.Len() == 0 {
		return 0
	}
	var sum float64
	for _, l := range est.Levels() {
		sum += 1 - math.Abs(float64(mastery.TargetProficiency-l.Level))/mastery.TargetProficiency
	}
	return sum / float64(est.Len())
}
