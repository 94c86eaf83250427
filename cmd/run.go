package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/app"
	"github.com/abhisek/skillpath/internal/store"
)

// runApp builds dependencies and launches the TUI. Logs go to a file
// so they do not tear the screen.
func runApp(cmd *cobra.Command) error {
	logPath, err := logFilePath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	setLogger(f)

	deps, cleanup, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting tui", "bank", deps.Bank.Len(), "grader", cfg.Grader)
	return app.Run(deps)
}

func logFilePath() (string, error) {
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "skillpath.log")
	if err := store.EnsureDir(p); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return p, nil
}
