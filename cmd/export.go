package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/app"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/report"
	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessments, estimates and role fit to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		_, cat, err := loadReference()
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		sessions, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		snap, err := st.SnapshotRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("load latest estimates: %w", err)
		}
		var est *mastery.Estimates
		if snap != nil {
			est = mastery.FromSnapshot(snap)
		} else {
			est = mastery.EstimatesOf(app.DeclaredLevels(cfg, cat)...)
		}

		d := &app.Deps{Config: cfg, Catalog: cat}
		fits := rolefit.Rank(cat.Roles(), rolefit.FromEstimates(est), d.FitOptions())

		if err := report.WriteWorkbook(out, report.Data{
			Sessions:  sessions,
			Estimates: est,
			Fits:      fits,
			SkillName: cat.SkillName,
		}); err != nil {
			return err
		}

		fmt.Printf("Wrote %d assessments and %d skills to %s\n", len(sessions), est.Len(), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "skillpath.xlsx", "Output workbook path")
}
