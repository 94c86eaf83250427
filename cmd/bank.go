package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a question bank against the skill catalog",
	Long: "Validate a YAML question bank. With no file, the configured bank\n" +
		"(or the built-in one) is checked.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.BankPath
		if len(args) == 1 {
			path = args[0]
		}
		bank, err := questionbank.LoadOrDefault(path)
		if err != nil {
			return err
		}
		cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
		if err != nil {
			return err
		}
		if err := questionbank.CheckSkills(bank, cat.HasSkill); err != nil {
			return err
		}

		fmt.Printf("%-32s  %9s\n", "Skill", "Questions")
		fmt.Println(rule(43))
		for _, id := range bank.SkillIDs() {
			fmt.Printf("%-32s  %9d\n", truncate(cat.SkillName(id), 32), len(bank.ForSkill(id)))
		}
		fmt.Printf("\n%d questions OK\n", bank.Len())
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
}
