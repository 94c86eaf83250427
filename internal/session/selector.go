package session

import (
	"math/rand/v2"
	"sort"

	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/questionbank"
)

// Difficulty windows around the target difficulty.
const (
	skillTolerance    = 2
	fallbackTolerance = 3
)

// TargetDifficulty maps an estimate to the difficulty that best probes it:
// below 40 targets 3, 40-75 targets 6 and above 75 targets 8.
func TargetDifficulty(estimate float64) int {
	switch {
	case estimate < 40:
		return 3
	case estimate <= 75:
		return 6
	default:
		return 8
	}
}

// Selector picks the next question for a session.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector. rng drives the random pick in the
// fallback path; pass a seeded source for reproducible selection, or nil
// to use the auto-seeded global source.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Next chooses the next unattempted question from pool.
//
// Target skills (all tracked skills when targets is empty) are walked in
// order of their gap below the 75 target, largest first. For each, the
// candidates are unattempted questions exercising the skill within 2 of the
// skill's target difficulty, and the one with the highest impact on that
// skill wins. If no skill yields a candidate, a question within 3 of the
// difficulty for the mean estimate is picked at random, and failing that
// the first unattempted question in pool order. It returns false when every
// question has been attempted.
func (s *Selector) Next(
	pool []*questionbank.Question,
	est *mastery.Estimates,
	attempted func(id string) bool,
	targets []string,
) (*questionbank.Question, bool) {
	remaining := make([]*questionbank.Question, 0, len(pool))
	for _, q := range pool {
		if !attempted(q.ID) {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		return nil, false
	}

	for _, skillID := range rankByGap(est, targets) {
		target := TargetDifficulty(float64(est.Get(skillID)))
		if q := bestForSkill(remaining, skillID, target); q != nil {
			return q, true
		}
	}

	return s.fallback(remaining, est), true
}

// rankByGap orders skills by distance below the target proficiency,
// largest gap first. Equal gaps keep their input order.
func rankByGap(est *mastery.Estimates, targets []string) []string {
	var skills []string
	if len(targets) > 0 {
		skills = append(skills, targets...)
	} else {
		skills = est.Skills()
	}
	sort.SliceStable(skills, func(i, j int) bool {
		return gap(est, skills[i]) > gap(est, skills[j])
	})
	return skills
}

func gap(est *mastery.Estimates, skillID string) int {
	return mastery.TargetProficiency - est.Get(skillID)
}

// bestForSkill returns the highest-impact question for skillID within the
// difficulty window, first found on ties, or nil.
func bestForSkill(remaining []*questionbank.Question, skillID string, target int) *questionbank.Question {
	var best *questionbank.Question
	bestImpact := 0
	for _, q := range remaining {
		impact, ok := q.Impact(skillID)
		if !ok || abs(q.Difficulty-target) > skillTolerance {
			continue
		}
		if best == nil || impact > bestImpact {
			best = q
			bestImpact = impact
		}
	}
	return best
}

func (s *Selector) fallback(remaining []*questionbank.Question, est *mastery.Estimates) *questionbank.Question {
	target := TargetDifficulty(est.Mean())

	var near []*questionbank.Question
	for _, q := range remaining {
		if abs(q.Difficulty-target) <= fallbackTolerance {
			near = append(near, q)
		}
	}
	if len(near) == 0 {
		return remaining[0]
	}
	return near[s.intN(len(near))]
}

func (s *Selector) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
