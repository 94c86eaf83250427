// Package config loads skillpath's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Fit    FitConfig    `yaml:"fit"`
	Store  StoreConfig  `yaml:"store"`

	// BankPath and CatalogPath override the embedded defaults when set.
	BankPath    string `yaml:"bank_path,omitempty"`
	CatalogPath string `yaml:"catalog_path,omitempty"`

	// DeclaredSkills are the learner's self-assessed levels (0-100),
	// blended with past results to seed each session.
	DeclaredSkills map[string]int `yaml:"declared_skills,omitempty"`

	LogLevel string `yaml:"log_level"`

	// Grader selects the answer evaluator: "heuristic" or "llm".
	Grader string `yaml:"grader"`
}

// EngineConfig tunes the adaptive session.
type EngineConfig struct {
	MaxQuestions        int      `yaml:"max_questions"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	LearningRate        float64  `yaml:"learning_rate"`
	TargetSkills        []string `yaml:"target_skills,omitempty"`
}

// FitConfig tunes role-fit scoring.
type FitConfig struct {
	MissingThreshold int `yaml:"missing_threshold"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// KeepSnapshots bounds how many estimate snapshots are retained.
	KeepSnapshots int `yaml:"keep_snapshots"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxQuestions:        20,
			ConfidenceThreshold: 0.8,
			LearningRate:        0.1,
		},
		Fit:      FitConfig{MissingThreshold: 40},
		Store:    StoreConfig{KeepSnapshots: 50},
		LogLevel: "info",
		Grader:   "heuristic",
	}
}

// Dir returns $XDG_CONFIG_HOME/skillpath, or ~/.config/skillpath.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skillpath"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "skillpath"), nil
}

// Path returns the config file location: $SKILLPATH_CONFIG if set,
// otherwise config.yaml under Dir.
func Path() (string, error) {
	if p := os.Getenv("SKILLPATH_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the config at path (Path() when empty), applies SKILLPATH_*
// overrides and validates the result. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SKILLPATH_BANK"); v != "" {
		c.BankPath = v
	}
	if v := os.Getenv("SKILLPATH_CATALOG"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("SKILLPATH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SKILLPATH_GRADER"); v != "" {
		c.Grader = v
	}
	if v := os.Getenv("SKILLPATH_MAX_QUESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SKILLPATH_MAX_QUESTIONS: %w", err)
		}
		c.Engine.MaxQuestions = n
	}
	if v := os.Getenv("SKILLPATH_TARGET_SKILLS"); v != "" {
		c.Engine.TargetSkills = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []string
	if c.Engine.MaxQuestions <= 0 {
		errs = append(errs, fmt.Sprintf("engine.max_questions must be positive, got %d", c.Engine.MaxQuestions))
	}
	if c.Engine.ConfidenceThreshold <= 0 || c.Engine.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Sprintf("engine.confidence_threshold must be in (0, 1], got %g", c.Engine.ConfidenceThreshold))
	}
	if c.Engine.LearningRate <= 0 || c.Engine.LearningRate > 1 {
		errs = append(errs, fmt.Sprintf("engine.learning_rate must be in (0, 1], got %g", c.Engine.LearningRate))
	}
	if c.Fit.MissingThreshold < 0 || c.Fit.MissingThreshold > 100 {
		errs = append(errs, fmt.Sprintf("fit.missing_threshold must be 0-100, got %d", c.Fit.MissingThreshold))
	}
	if c.Store.KeepSnapshots < 0 {
		errs = append(errs, fmt.Sprintf("store.keep_snapshots must not be negative, got %d", c.Store.KeepSnapshots))
	}
	for id, level := range c.DeclaredSkills {
		if level < 0 || level > 100 {
			errs = append(errs, fmt.Sprintf("declared_skills.%s must be 0-100, got %d", id, level))
		}
	}
	switch c.Grader {
	case "", "heuristic", "llm":
	default:
		errs = append(errs, fmt.Sprintf("grader must be heuristic or llm, got %q", c.Grader))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// SlogLevel returns the configured log level, info when unset.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q is not one of debug, info, warn, error", s)
	}
	return lvl, nil
}
