package mastery

import "math"

// Weights for blending a prior score into an existing estimate.
const (
	priorExistingWeight = 0.7
	priorNewWeight      = 0.3
)

// SkillLevel is a self-reported or computed level for one skill.
type SkillLevel struct {
	SkillID string
	Level   int
}

// PriorScore is one historical score for a skill.
type PriorScore struct {
	SkillID string
	Score   int
}

// Initialize builds the starting estimates for a session. Each declared
// skill starts at its reported level. Prior scores are then blended in one
// at a time as round(0.7*existing + 0.3*prior); a skill with several prior
// scores blends each on top of the previous result. Skills that were never
// declared start from 0.
func Initialize(declared []SkillLevel, prior []PriorScore) *Estimates {
	e := NewEstimates()
	for _, d := range declared {
		e.Set(d.SkillID, d.Level)
	}
	for _, p := range prior {
		cur := float64(e.Get(p.SkillID))
		score := float64(clampInt(p.Score))
		// Explicit conversions keep the compiler from fusing into an FMA,
		// so half-way results round the same on every architecture.
		blended := float64(cur*priorExistingWeight) + float64(score*priorNewWeight)
		e.Set(p.SkillID, int(math.Round(blended)))
	}
	return e
}
