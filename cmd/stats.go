package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show past assessments and current skill estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

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
		sessions, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No assessments yet. Run `skillpath` to take one.")
			return nil
		}

		fmt.Println("Assessments")
		fmt.Println(rule(60))
		fmt.Printf("%-19s  %9s  %8s  %7s\n", "Date", "Questions", "Duration", "Overall")
		fmt.Println(rule(60))
		for _, s := range sessions {
			fmt.Printf("%-19s  %9d  %5d:%02d  %7d\n",
				s.Timestamp.Local().Format("2006-01-02 15:04:05"),
				s.QuestionsAnswered,
				s.DurationSecs/60, s.DurationSecs%60,
				s.OverallScore)
		}

		snap, err := st.SnapshotRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("load latest estimates: %w", err)
		}
		if snap == nil {
			return nil
		}

		fmt.Println()
		fmt.Println("Current estimates")
		fmt.Println(rule(60))
		for _, l := range mastery.FromSnapshot(snap).Levels() {
			fmt.Printf("%-32s  %3d  %s\n", truncate(cat.SkillName(l.SkillID), 32), l.Level, mastery.LevelFor(l.Level))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
}
