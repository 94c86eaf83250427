package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/catalog"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		_, cat, err := loadReference()
		if err != nil {
			return err
		}

		skills := cat.Skills()
		if category != "" {
			skills = cat.ByCategory(catalog.Category(category))
			if len(skills) == 0 {
				return fmt.Errorf("no skills found for category %q", category)
			}
		}

		fmt.Printf("%-24s  %-32s  %s\n", "ID", "Name", "Category")
		fmt.Println(rule(80))

		for _, s := range skills {
			fmt.Printf("%-24s  %-32s  %s\n",
				s.ID, truncate(s.Name, 32), catalog.CategoryDisplayName(s.Category))
		}

		fmt.Printf("\n%d skills\n", len(skills))
		return nil
	},
}

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Browse job role profiles",
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cat, err := loadReference()
		if err != nil {
			return err
		}

		fmt.Printf("%-24s  %-32s  %s\n", "ID", "Name", "Skills")
		fmt.Println(rule(80))
		for _, r := range cat.Roles() {
			fmt.Printf("%-24s  %-32s  %d\n", r.ID, truncate(r.Name, 32), len(r.Skills))
		}
		fmt.Printf("\n%d roles\n", len(cat.Roles()))
		return nil
	},
}

var roleShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a role's weighted skill requirements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cat, err := loadReference()
		if err != nil {
			return err
		}
		r, err := cat.Role(args[0])
		if err != nil {
			return err
		}

		fmt.Println(r.Name)
		if r.Description != "" {
			fmt.Println(r.Description)
		}
		fmt.Println()
		fmt.Printf("%-32s  %6s\n", "Skill", "Weight")
		fmt.Println(rule(40))
		for _, rs := range r.Skills {
			fmt.Printf("%-32s  %6d\n", truncate(cat.SkillName(rs.SkillID), 32), rs.Weight)
		}
		return nil
	},
}

func init() {
	skillListCmd.Flags().String("category", "", "Filter by category (frontend, backend, data, infrastructure, practice)")

	skillCmd.AddCommand(skillListCmd)
	roleCmd.AddCommand(roleListCmd)
	roleCmd.AddCommand(roleShowCmd)
}
