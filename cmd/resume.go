package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/app"
	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/resume"
	"github.com/abhisek/skillpath/internal/rolefit"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <file>",
	Short: "Estimate skills from a resume and score role fit",
	Long: "Read a plain-text resume (use - for stdin), ask the configured LLM which\n" +
		"catalog skills it evidences, and score every role against the result.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		text, err := readInput(args[0])
		if err != nil {
			return err
		}

		_, cat, err := loadReference()
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, release, err := newProvider(cmd.Context(), st.EventRepo())
		if err != nil {
			return err
		}
		defer release()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		analyzer := resume.NewAnalyzer(provider, resume.DefaultConfig(), logger)
		res, err := analyzer.Analyze(ctx, text, cat.Skills())
		if err != nil {
			return err
		}

		if res.Summary != "" {
			fmt.Println(res.Summary)
			fmt.Println()
		}

		fmt.Printf("%-32s  %5s  %s\n", "Skill", "Level", "Evidence")
		fmt.Println(rule(80))
		for _, f := range res.Findings {
			fmt.Printf("%-32s  %5d  %s\n", truncate(cat.SkillName(f.SkillID), 32), f.Level, truncate(f.Evidence, 40))
		}
		fmt.Println()

		d := &app.Deps{Config: cfg, Catalog: cat}
		printReport(rolefit.BuildReport(cat.Roles(), res.Skills, d.FitOptions()))

		if save {
			path, err := saveDeclared(cmd, res.Skills)
			if err != nil {
				return err
			}
			fmt.Printf("\nSaved %d declared skills to %s\n", len(res.Skills), path)
		}
		return nil
	},
}

func readInput(name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	return string(data), nil
}

// saveDeclared merges levels into the config's declared skills and
// writes the config back.
func saveDeclared(cmd *cobra.Command, levels rolefit.UserSkillVector) (string, error) {
	path, err := configPath(cmd)
	if err != nil {
		return "", err
	}
	if cfg.DeclaredSkills == nil {
		cfg.DeclaredSkills = make(map[string]int, len(levels))
	}
	for _, sl := range levels {
		cfg.DeclaredSkills[sl.SkillID] = sl.Level
	}
	if err := config.Save(path, cfg); err != nil {
		return "", err
	}
	return path, nil
}

func init() {
	resumeCmd.Flags().Bool("save", false, "Store the estimated levels as declared skills in the config")
	resumeCmd.Flags().Duration("timeout", 2*time.Minute, "Maximum time to wait for the analysis")
}
