package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/evaluator"
	"github.com/abhisek/skillpath/internal/mastery"
	"github.com/abhisek/skillpath/internal/questionbank"
	"github.com/abhisek/skillpath/internal/rolefit"
	"github.com/abhisek/skillpath/internal/session"
	"github.com/abhisek/skillpath/internal/store"
)

// Deps are the collaborators shared by the TUI and the CLI commands.
type Deps struct {
	Config    *config.Config
	Bank      *questionbank.Bank
	Catalog   *catalog.Catalog
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Evaluator evaluator.Evaluator
	Logger    *slog.Logger

	// Rand seeds question selection. Nil uses the global source.
	Rand *rand.Rand
}

// DeclaredLevels returns the configured self-assessed skills, in catalog
// order followed by skills the catalog does not know, sorted by ID.
func DeclaredLevels(cfg *config.Config, cat *catalog.Catalog) []mastery.SkillLevel {
	if cfg == nil || len(cfg.DeclaredSkills) == 0 {
		return nil
	}
	out := make([]mastery.SkillLevel, 0, len(cfg.DeclaredSkills))
	seen := make(map[string]bool, len(cfg.DeclaredSkills))
	if cat != nil {
		for _, sk := range cat.Skills() {
			if lvl, ok := cfg.DeclaredSkills[sk.ID]; ok {
				out = append(out, mastery.SkillLevel{SkillID: sk.ID, Level: lvl})
				seen[sk.ID] = true
			}
		}
	}
	var rest []string
	for id := range cfg.DeclaredSkills {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		out = append(out, mastery.SkillLevel{SkillID: id, Level: cfg.DeclaredSkills[id]})
	}
	return out
}

// InitialEstimates seeds a new session from declared levels, with every
// other skill the bank exercises at 0, blended with every stored
// assessment, oldest first.
func (d *Deps) InitialEstimates(ctx context.Context) (*mastery.Estimates, error) {
	var prior []mastery.PriorScore
	if d.Snapshots != nil {
		snaps, err := d.Snapshots.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("load past results: %w", err)
		}
		prior = mastery.PriorScoresFrom(snaps)
	}
	return mastery.Initialize(d.startingLevels(), prior), nil
}

// startingLevels appends the bank's undeclared skills at 0 to the declared
// levels so they take part in gap ranking and confidence.
func (d *Deps) startingLevels() []mastery.SkillLevel {
	levels := DeclaredLevels(d.Config, d.Catalog)
	if d.Bank == nil {
		return levels
	}
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		seen[l.SkillID] = true
	}
	for _, id := range d.Bank.SkillIDs() {
		if !seen[id] {
			seen[id] = true
			levels = append(levels, mastery.SkillLevel{SkillID: id})
		}
	}
	return levels
}

// StartSession creates and starts a new assessment session.
func (d *Deps) StartSession(ctx context.Context) (*session.Session, error) {
	est, err := d.InitialEstimates(ctx)
	if err != nil {
		return nil, err
	}

	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}

	var skillName func(string) string
	if d.Catalog != nil {
		skillName = d.Catalog.SkillName
	}

	s, err := session.New(session.Options{
		Config: session.Config{
			MaxQuestions:        cfg.Engine.MaxQuestions,
			ConfidenceThreshold: cfg.Engine.ConfidenceThreshold,
			LearningRate:        cfg.Engine.LearningRate,
			TargetSkills:        cfg.Engine.TargetSkills,
			KeepSnapshots:       cfg.Store.KeepSnapshots,
		},
		Bank:         d.Bank,
		Estimates:    est,
		Evaluator:    d.Evaluator,
		Rand:         d.Rand,
		EventRepo:    d.Events,
		SnapshotRepo: d.Snapshots,
		SkillName:    skillName,
		Logger:       d.Logger,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// FitOptions returns role-fit options from the config.
func (d *Deps) FitOptions() rolefit.Options {
	opts := rolefit.DefaultOptions()
	if d.Config != nil && d.Config.Fit.MissingThreshold > 0 {
		opts.MissingThreshold = d.Config.Fit.MissingThreshold
	}
	if d.Catalog != nil {
		opts.SkillName = d.Catalog.SkillName
	}
	return opts
}
