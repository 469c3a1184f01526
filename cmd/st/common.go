package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"go.stacked.dev/st/internal/ai"
	"go.stacked.dev/st/internal/config"
	"go.stacked.dev/st/internal/engine"
	"go.stacked.dev/st/internal/forge"
	"go.stacked.dev/st/internal/git"
	"go.stacked.dev/st/internal/store"
	"go.stacked.dev/st/internal/ui"
)

// session is everything a command needs to operate on the current
// repository: an open engine context and the store to persist its
// tree back to on success.
type session struct {
	Engine *engine.Context
	Store  *store.Store
}

// openSession discovers the current git repository, loads its stack
// store and global configuration, and wires up the remote and
// interactive collaborators. defaultTrunk is used only the first time
// a repository's store is created.
func openSession(ctx context.Context, logger *log.Logger, opts *globalOptions, defaultTrunk string) (*session, error) {
	repo, err := git.Open(ctx, ".", git.OpenOptions{Log: logger})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	cfgPath, err := config.Path()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if opts.Token == "" {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = &config.Config{GitHubToken: opts.Token, Editor: config.DefaultEditor}
	}
	if opts.Token != "" {
		cfg.GitHubToken = opts.Token
	}

	st := store.Open(repo.GitDir())
	tree, err := st.Load(defaultTrunk)
	if err != nil {
		return nil, fmt.Errorf("load stack store: %w", err)
	}

	owner, name, err := repo.OwnerAndRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("determine remote repository: %w", err)
	}

	eng := &engine.Context{
		Repo:   repo,
		Tree:   tree,
		Forge:  forge.NewGitHub(ctx, cfg.GitHubToken, owner, name),
		UI:     &ui.Survey{Editor: cfg.Editor},
		Log:    logger,
		Config: cfg,
	}
	if cfg.HasAI() {
		eng.AI = ai.NewGemini(cfg.GeminiAPIKey)
	}

	return &session{Engine: eng, Store: st}, nil
}

// save persists the session's tree back to the store. Commands call
// this only after their operation succeeds, matching the
// scoped-acquisition-with-save-on-success lifecycle every mutating
// command follows.
func (s *session) save() error {
	return s.Store.Save(s.Engine.Tree)
}
