package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/store"
)

// Loaded by the root PersistentPreRunE before any command runs.
var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skillpath",
	Short: "Adaptive skill assessment and role-fit scoring",
	Long: "SkillPath is a terminal app that measures your engineering skills with an\n" +
		"adaptive quiz and tells you which job roles you fit and what to learn next.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvironment(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLPATH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides SKILLPATH_CONFIG env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file with provider API keys")

	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(roleCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvironment reads the dotenv file and config and sets up logging
// to stderr. The TUI swaps the logger for a file before it starts.
func loadEnvironment(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	setLogger(os.Stderr)
	return nil
}

func setLogger(w io.Writer) {
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SKILLPATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by --db.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
