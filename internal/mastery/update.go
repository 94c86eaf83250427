package mastery

import (
	"math"

	"github.com/abhisek/skillpath/internal/questionbank"
)

// DefaultLearningRate scales how far a single answer moves an estimate.
const DefaultLearningRate = 0.1

// Update returns a copy of est adjusted for a graded answer to q. score is
// in [0,1]. For each skill the question exercises, the expected score is
// 1 - difficulty/10 and the estimate moves by
// learningRate * impact/10 * (score - expected) * 100, clamped to [0,100]
// and rounded. Skills not yet tracked start from 0. est is not modified.
func Update(est *Estimates, q *questionbank.Question, score, learningRate float64) *Estimates {
	next := est.Clone()
	expected := 1 - float64(q.Difficulty)/10
	for _, s := range q.Skills {
		adj := learningRate * (float64(s.Impact) / 10) * (score - expected)
		v := clampFloat(float64(next.Get(s.SkillID)) + adj*100)
		next.Set(s.SkillID, int(math.Round(v)))
	}
	return next
}

// Delta is the before/after estimate of one skill touched by an update.
type Delta struct {
	SkillID string
	Before  int
	After   int
}

// Change returns the signed change in estimate.
func (d Delta) Change() int {
	return d.After - d.Before
}

// Diff reports the estimates of q's skills before and after an update.
func Diff(before, after *Estimates, q *questionbank.Question) []Delta {
	out := make([]Delta, 0, len(q.Skills))
	for _, s := range q.Skills {
		out = append(out, Delta{
			SkillID: s.SkillID,
			Before:  before.Get(s.SkillID),
			After:   after.Get(s.SkillID),
		})
	}
	return out
}
