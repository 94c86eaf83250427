// Package rolefit scores how well a learner's skills match job roles.
package rolefit

import (
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/mastery"
)

// Badge labels.
const (
	BadgeHighlyMatched = "Highly Matched"
	BadgeGoodMatch     = "Good Match"
	BadgeNeedsWork     = "Needs Work"
)

// Badge thresholds on the match percentage.
const (
	HighlyMatchedFloor = 85
	GoodMatchFloor     = 60
)

// DefaultMissingThreshold is the level below which a required skill is
// reported as missing.
const DefaultMissingThreshold = 40

// SkillLevel is one entry of a learner's skill vector, level 0-100.
type SkillLevel struct {
	SkillID string
	Level   int
}

// UserSkillVector lists a learner's skill levels. Skills not listed count
// as level 0.
type UserSkillVector []SkillLevel

// Level returns the level for skillID, or 0 if absent. When a skill is
// listed more than once the highest level wins, so order never matters.
func (v UserSkillVector) Level(skillID string) int {
	level := 0
	for _, s := range v {
		if s.SkillID == skillID && s.Level > level {
			level = s.Level
		}
	}
	return level
}

// FromEstimates converts session estimates into a skill vector.
func FromEstimates(est *mastery.Estimates) UserSkillVector {
	levels := est.Levels()
	v := make(UserSkillVector, 0, len(levels))
	for _, l := range levels {
		v = append(v, SkillLevel{SkillID: l.SkillID, Level: l.Level})
	}
	return v
}

// Score returns the weighted match percentage of user against role:
// 100 * sum(level/100 * weight) / sum(weight), rounded to the nearest
// integer. A role with no weight scores 0.
func Score(role catalog.Role, user UserSkillVector) int {
	totalWeight := 0
	weighted := 0
	for _, rs := range role.Skills {
		totalWeight += rs.Weight
		weighted += user.Level(rs.SkillID) * rs.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(float64(weighted) / float64(totalWeight)))
}

// Badge maps a match percentage to its label.
func Badge(match int) string {
	switch {
	case match >= HighlyMatchedFloor:
		return BadgeHighlyMatched
	case match >= GoodMatchFloor:
		return BadgeGoodMatch
	default:
		return BadgeNeedsWork
	}
}

// MissingSkill is a role requirement the learner falls short of.
type MissingSkill struct {
	SkillID   string
	SkillName string
	Level     int
	Threshold int
	Reason    string
}

// MissingSkills lists the role's skills whose user level is below
// threshold, in role order. names resolves display names; nil uses IDs.
func MissingSkills(role catalog.Role, user UserSkillVector, threshold int, names func(string) string) []MissingSkill {
	if names == nil {
		names = func(id string) string { return id }
	}
	var out []MissingSkill
	for _, rs := range role.Skills {
		level := user.Level(rs.SkillID)
		if level >= threshold {
			continue
		}
		name := names(rs.SkillID)
		out = append(out, MissingSkill{
			SkillID:   rs.SkillID,
			SkillName: name,
			Level:     level,
			Threshold: threshold,
			Reason: fmt.Sprintf("%s requires %s (current level %d, needs %d)",
				role.Name, name, level, threshold),
		})
	}
	return out
}

// Options configures Analyze and Rank.
type Options struct {
	MissingThreshold int
	SkillName        func(string) string
}

// DefaultOptions returns the standard analysis options.
func DefaultOptions() Options {
	return Options{MissingThreshold: DefaultMissingThreshold}
}

// Fit is the analysis of one role.
type Fit struct {
	Role    catalog.Role
	Match   int
	Badge   string
	Missing []MissingSkill
}

// Analyze scores user against role.
func Analyze(role catalog.Role, user UserSkillVector, opts Options) Fit {
	threshold := opts.MissingThreshold
	if threshold <= 0 {
		threshold = DefaultMissingThreshold
	}
	match := Score(role, user)
	return Fit{
		Role:    role,
		Match:   match,
		Badge:   Badge(match),
		Missing: MissingSkills(role, user, threshold, opts.SkillName),
	}
}

// Rank analyzes every role, best match first. Equal matches are ordered
// by role ID.
func Rank(roles []catalog.Role, user UserSkillVector, opts Options) []Fit {
	fits := make([]Fit, 0, len(roles))
	for _, r := range roles {
		fits = append(fits, Analyze(r, user, opts))
	}
	sort.SliceStable(fits, func(i, j int) bool {
		if fits[i].Match != fits[j].Match {
			return fits[i].Match > fits[j].Match
		}
		return fits[i].Role.ID < fits[j].Role.ID
	})
	return fits
}
