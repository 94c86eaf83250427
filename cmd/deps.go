package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/app"
	"github.com/abhisek/skillpath/internal/catalog"
	"github.com/abhisek/skillpath/internal/evaluator"
	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/questionbank"
	"github.com/abhisek/skillpath/internal/store"
)

// loadReference loads the question bank and catalog named by the config,
// falling back to the embedded copies.
func loadReference() (*questionbank.Bank, *catalog.Catalog, error) {
	bank, err := questionbank.LoadOrDefault(cfg.BankPath)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	if err := questionbank.CheckSkills(bank, cat.HasSkill); err != nil {
		logger.Warn("question bank references skills outside the catalog", "error", err)
	}
	return bank, cat, nil
}

// newProvider builds the LLM provider from the environment. Callers must
// call the returned release func when done.
func newProvider(ctx context.Context, events store.EventRepo) (llm.Provider, func(), error) {
	p, err := llm.NewProviderFromEnv(ctx, events, logger)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, nil, fmt.Errorf("%w: set SKILLPATH_LLM_PROVIDER or a vendor API key such as ANTHROPIC_API_KEY", err)
		}
		return nil, nil, err
	}
	release := func() {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Debug("close llm provider", "error", err)
			}
		}
	}
	return p, release, nil
}

// openDeps opens the store and assembles everything an assessment needs.
// The returned cleanup closes what was opened.
func openDeps(cmd *cobra.Command) (*app.Deps, func(), error) {
	bank, cat, err := loadReference()
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { st.Close() }

	var provider llm.Provider
	if cfg.Grader == evaluator.KindLLM {
		p, release, err := newProvider(cmd.Context(), st.EventRepo())
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("grader is llm: %w", err)
		}
		provider = p
		cleanup = func() {
			release()
			st.Close()
		}
	}

	eval, err := evaluator.New(cfg.Grader, provider, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &app.Deps{
		Config:    cfg,
		Bank:      bank,
		Catalog:   cat,
		Events:    st.EventRepo(),
		Snapshots: st.SnapshotRepo(),
		Evaluator: eval,
		Logger:    logger,
	}, cleanup, nil
}
