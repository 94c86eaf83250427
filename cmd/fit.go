package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/app"
	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/rolefit"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Score how well your skills match each job role",
	Long: "Score role fit from explicit --skill levels, or else from your latest\n" +
		"assessment, or else from the declared skills in your config.",
	RunE: func(cmd *cobra.Command, args []string) error {
		roleID, _ := cmd.Flags().GetString("role")
		flags, _ := cmd.Flags().GetStringArray("skill")

		_, cat, err := loadReference()
		if err != nil {
			return err
		}

		user, source, err := userVector(cmd, cat, flags)
		if err != nil {
			return err
		}

		roles := cat.Roles()
		if roleID != "" {
			r, err := cat.Role(roleID)
			if err != nil {
				return err
			}
			roles = []catalog.Role{r}
		}

		d := &app.Deps{Config: cfg, Catalog: cat}
		report := rolefit.BuildReport(roles, user, d.FitOptions())

		fmt.Printf("Skills from %s\n\n", source)
		printReport(report)
		return nil
	},
}

// userVector picks the skill vector fit scores against.
func userVector(cmd *cobra.Command, cat *catalog.Catalog, flags []string) (rolefit.UserSkillVector, string, error) {
	if len(flags) > 0 {
		v, err := parseSkillLevels(flags)
		if err != nil {
			return nil, "", err
		}
		for _, sl := range v {
			if !cat.HasSkill(sl.SkillID) {
				return nil, "", fmt.Errorf("unknown skill %q (see `skillpath skill list`)", sl.SkillID)
			}
		}
		return v, "--skill flags", nil
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, "", err
	}
	defer st.Close()

	snap, err := st.SnapshotRepo().Latest(cmd.Context())
	if err != nil {
		return nil, "", fmt.Errorf("load latest assessment: %w", err)
	}
	if snap != nil {
		return rolefit.FromEstimates(mastery.FromSnapshot(snap)),
			"assessment of " + snap.Timestamp.Local().Format("2006-01-02 15:04"), nil
	}

	declared := app.DeclaredLevels(cfg, cat)
	if len(declared) == 0 {
		return nil, "", fmt.Errorf("no skills to score: take an assessment, pass --skill id=level, or declare skills in your config")
	}
	return rolefit.FromEstimates(mastery.EstimatesOf(declared...)), "declared skills", nil
}

// parseSkillLevels parses id=level pairs with levels 0-100.
func parseSkillLevels(pairs []string) (rolefit.UserSkillVector, error) {
	v := make(rolefit.UserSkillVector, 0, len(pairs))
	for _, p := range pairs {
		id, raw, ok := strings.Cut(p, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid skill %q: want id=level", p)
		}
		level, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid level in %q: %w", p, err)
		}
		if level < mastery.MinEstimate || level > mastery.MaxEstimate {
			return nil, fmt.Errorf("level in %q must be %d-%d", p, mastery.MinEstimate, mastery.MaxEstimate)
		}
		v = append(v, rolefit.SkillLevel{SkillID: id, Level: level})
	}
	return v, nil
}

func printReport(r *rolefit.Report) {
	fmt.Printf("%-32s  %6s  %s\n", "Role", "Match", "Badge")
	fmt.Println(rule(60))
	for _, f := range r.Fits {
		fmt.Printf("%-32s  %5d%%  %s\n", truncate(f.Role.Name, 32), f.Match, f.Badge)
	}

	if top := r.Top(); top != nil && len(top.Missing) > 0 {
		fmt.Printf("\nGaps for %s\n", top.Role.Name)
		fmt.Println(rule(60))
		for _, m := range top.Missing {
			fmt.Println("  • " + m.Reason)
		}
	}

	fmt.Println("\nRecommendations")
	fmt.Println(rule(60))
	for _, rec := range r.Recommendations {
		fmt.Println("  • " + rec)
	}
}

func init() {
	fitCmd.Flags().StringP("role", "r", "", "Score a single role by ID")
	fitCmd.Flags().StringArrayP("skill", "s", nil, "Skill level as id=level (repeatable)")
}
