package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SKILLPATH_CONFIG", "SKILLPATH_BANK", "SKILLPATH_CATALOG", "SKILLPATH_LOG_LEVEL",
		"SKILLPATH_GRADER", "SKILLPATH_MAX_QUESTIONS", "SKILLPATH_TARGET_SKILLS",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 20, cfg.Engine.MaxQuestions)
	assert.Equal(t, 0.8, cfg.Engine.ConfidenceThreshold)
	assert.Equal(t, 0.1, cfg.Engine.LearningRate)
	assert.Equal(t, 40, cfg.Fit.MissingThreshold)
	assert.Equal(t, 50, cfg.Store.KeepSnapshots)
	assert.Equal(t, "heuristic", cfg.Grader)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "config.yaml", `
engine:
  max_questions: 12
  target_skills: [react, css]
declared_skills:
  react: 70
  css: 40
grader: llm
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Engine.MaxQuestions)
	assert.Equal(t, 0.8, cfg.Engine.ConfidenceThreshold, "unset keys keep defaults")
	assert.Equal(t, []string{"react", "css"}, cfg.Engine.TargetSkills)
	assert.Equal(t, map[string]int{"react": 70, "css": 40}, cfg.DeclaredSkills)
	assert.Equal(t, "llm", cfg.Grader)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "config.yaml", "engine:\n  max_questions: 12\n")
	t.Setenv("SKILLPATH_MAX_QUESTIONS", "5")
	t.Setenv("SKILLPATH_TARGET_SKILLS", "sql, docker,,")
	t.Setenv("SKILLPATH_BANK", "/tmp/bank.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.MaxQuestions)
	assert.Equal(t, []string{"sql", "docker"}, cfg.Engine.TargetSkills)
	assert.Equal(t, "/tmp/bank.yaml", cfg.BankPath)

	t.Setenv("SKILLPATH_MAX_QUESTIONS", "lots")
	_, err = Load(path)
	assert.ErrorContains(t, err, "SKILLPATH_MAX_QUESTIONS")
}

func TestLoad_UsesSkillpathConfigEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "custom.yaml", "grader: llm\n")
	t.Setenv("SKILLPATH_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "llm", cfg.Grader)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Engine.MaxQuestions = 0
	cfg.Engine.ConfidenceThreshold = 1.5
	cfg.Fit.MissingThreshold = 101
	cfg.DeclaredSkills = map[string]int{"go": 120}
	cfg.Grader = "oracle"
	cfg.LogLevel = "chatty"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"engine.max_questions", "engine.confidence_threshold", "fit.missing_threshold",
		"declared_skills.go", "grader", "log_level",
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.Equal(t, 6, strings.Count(err.Error(), "\n  - "))
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.DeclaredSkills = map[string]int{"python": 55}

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "skillpath"), dir)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "SKILLPATH_TEST_DOTENV=from-file\nSKILLPATH_TEST_PRESET=from-file\n")
	t.Setenv("SKILLPATH_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("SKILLPATH_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("SKILLPATH_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("SKILLPATH_TEST_PRESET"), "existing variables win")
}
