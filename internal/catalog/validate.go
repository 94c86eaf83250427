package catalog

import (
	"fmt"
	"strings"
)

// validate performs structural checks on skills and roles.
// Returns a combined error describing all problems found, or nil if valid.
func validate(skills []Skill, roles []Role) error {
	var errs []string

	skillIDs := make(map[string]bool, len(skills))
	for _, s := range skills {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("skill %q has no ID", s.Name))
			continue
		}
		if skillIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		skillIDs[s.ID] = true
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("skill %q has no name", s.ID))
		}
	}

	roleIDs := make(map[string]bool, len(roles))
	for _, r := range roles {
		if r.ID == "" {
			errs = append(errs, fmt.Sprintf("role %q has no ID", r.Name))
			continue
		}
		if roleIDs[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate role ID: %q", r.ID))
		}
		roleIDs[r.ID] = true

		if len(r.Skills) == 0 {
			errs = append(errs, fmt.Sprintf("role %q requires no skills", r.ID))
		}
		seen := make(map[string]bool, len(r.Skills))
		for _, rs := range r.Skills {
			if !skillIDs[rs.SkillID] {
				errs = append(errs, fmt.Sprintf("role %q references unknown skill %q", r.ID, rs.SkillID))
			}
			if seen[rs.SkillID] {
				errs = append(errs, fmt.Sprintf("role %q lists skill %q more than once", r.ID, rs.SkillID))
			}
			seen[rs.SkillID] = true
			if rs.Weight < 1 || rs.Weight > 10 {
				errs = append(errs, fmt.Sprintf("role %q weight %d for skill %q out of range 1-10", r.ID, rs.Weight, rs.SkillID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
