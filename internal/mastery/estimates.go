// Package mastery tracks per-skill proficiency estimates on a 0-100 scale
// and moves them in response to graded answers.
package mastery

import "math"

// Scale bounds for every estimate.
const (
	MinEstimate = 0
	MaxEstimate = 100
)

// TargetProficiency is the estimate a learner is steered towards. Skills
// furthest below it are assessed first.
const TargetProficiency = 75

// Estimates maps skill IDs to integer proficiency estimates in [0,100].
// Skills remember the order they were first introduced so listings and
// tie-breaks are deterministic. The zero value is not usable; call
// NewEstimates.
type Estimates struct {
	order  []string
	values map[string]int
}

// NewEstimates returns an empty estimate map.
func NewEstimates() *Estimates {
	return &Estimates{values: make(map[string]int)}
}

// EstimatesOf builds an estimate map from levels, in the order given.
func EstimatesOf(levels ...SkillLevel) *Estimates {
	e := NewEstimates()
	for _, l := range levels {
		e.Set(l.SkillID, l.Level)
	}
	return e
}

// Get returns the estimate for skillID, or 0 if it has never been set.
func (e *Estimates) Get(skillID string) int {
	return e.values[skillID]
}

// Has reports whether skillID has an estimate.
func (e *Estimates) Has(skillID string) bool {
	_, ok := e.values[skillID]
	return ok
}

// Set stores v for skillID, clamped to [0,100].
func (e *Estimates) Set(skillID string, v int) {
	if _, ok := e.values[skillID]; !ok {
		e.order = append(e.order, skillID)
	}
	e.values[skillID] = clampInt(v)
}

// Skills returns the tracked skill IDs in introduction order.
func (e *Estimates) Skills() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Levels returns every estimate as a SkillLevel, in introduction order.
func (e *Estimates) Levels() []SkillLevel {
	out := make([]SkillLevel, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, SkillLevel{SkillID: id, Level: e.values[id]})
	}
	return out
}

// Len returns the number of tracked skills.
func (e *Estimates) Len() int {
	return len(e.order)
}

// Mean returns the arithmetic mean of all estimates, or 0 when empty.
func (e *Estimates) Mean() float64 {
	if len(e.order) == 0 {
		return 0
	}
	sum := 0
	for _, v := range e.values {
		sum += v
	}
	return float64(sum) / float64(len(e.order))
}

// Clone returns a deep copy.
func (e *Estimates) Clone() *Estimates {
	c := &Estimates{
		order:  make([]string, len(e.order)),
		values: make(map[string]int, len(e.values)),
	}
	copy(c.order, e.order)
	for k, v := range e.values {
		c.values[k] = v
	}
	return c
}

// Map returns a copy of the estimates as a plain map.
func (e *Estimates) Map() map[string]int {
	m := make(map[string]int, len(e.values))
	for k, v := range e.values {
		m[k] = v
	}
	return m
}

func clampInt(v int) int {
	if v < MinEstimate {
		return MinEstimate
	}
	if v > MaxEstimate {
		return MaxEstimate
	}
	return v
}

func clampFloat(v float64) float64 {
	return math.Max(MinEstimate, math.Min(MaxEstimate, v))
}
