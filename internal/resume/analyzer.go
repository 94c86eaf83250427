// Package resume estimates a skill vector from resume text with an LLM.
package resume

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/rolefit"
)

// ErrEmptyResume is returned when the resume text is blank.
var ErrEmptyResume = errors.New("resume text is empty")

// Config holds configuration for the analyzer.
type Config struct {
	MaxTokens   int
	Temperature float64
	MaxChars    int // resume text beyond this is truncated
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0,
		MaxChars:    20000,
	}
}

// SkillFinding is one skill reported by the model.
type SkillFinding struct {
	SkillID  string `json:"skill_id"`
	Level    int    `json:"level"`
	Evidence string `json:"evidence"`
}

// Result is the outcome of a resume analysis.
type Result struct {
	Skills  rolefit.UserSkillVector
	Summary string

	// Findings keeps the evidence for each accepted skill, in model order.
	Findings []SkillFinding

	// Dropped lists skill IDs the model returned that are not in the
	// catalog.
	Dropped []string
}

type analysisOutput struct {
	Skills  []SkillFinding `json:"skills"`
	Summary string         `json:"summary"`
}

// Analyzer turns resume text into a skill vector.
type Analyzer struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(provider llm.Provider, cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{provider: provider, cfg: cfg, logger: logger}
}

// Analyze asks the model which of skills the resume evidences. Unknown
// skill IDs are dropped and levels clamped to 0-100. A skill reported
// twice keeps its highest level.
func (a *Analyzer) Analyze(ctx context.Context, text string, skills []catalog.Skill) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResume
	}
	if len(skills) == 0 {
		return nil, errors.New("no skills to assess")
	}

	known := make(map[string]bool, len(skills))
	ids := make([]string, len(skills))
	for i, s := range skills {
		known[s.ID] = true
		ids[i] = s.ID
	}

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, llm.PurposeResume), llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(text, skills, a.cfg.MaxChars)},
		},
		Schema:      analysisSchema(ids),
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze resume: %w", err)
	}

	var out analysisOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode resume analysis: %w", err)
	}

	res := &Result{Summary: strings.TrimSpace(out.Summary)}
	index := make(map[string]int)
	for _, f := range out.Skills {
		if !known[f.SkillID] {
			res.Dropped = append(res.Dropped, f.SkillID)
			continue
		}
		f.Level = clampLevel(f.Level)
		if i, seen := index[f.SkillID]; seen {
			if f.Level > res.Findings[i].Level {
				res.Findings[i] = f
			}
			continue
		}
		index[f.SkillID] = len(res.Findings)
		res.Findings = append(res.Findings, f)
	}

	for _, f := range res.Findings {
		res.Skills = append(res.Skills, rolefit.SkillLevel{SkillID: f.SkillID, Level: f.Level})
	}

	if len(res.Dropped) > 0 {
		a.logger.Info("dropped unknown skills from resume analysis", "skills", res.Dropped)
	}
	return res, nil
}

func clampLevel(v int) int {
	return min(max(v, mastery.MinEstimate), mastery.MaxEstimate)
}

func digest(ids []string) string {
	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:4])
}
