package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"go.stacked.dev/st/internal/git"
)

type repoInitCmd struct {
	Trunk string `arg:"" optional:"" help:"Trunk branch to track; defaults to the origin remote's default branch, falling back to the current branch"`
}

func (cmd *repoInitCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	repo, err := git.Open(ctx, ".", git.OpenOptions{Log: logger})
	if err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}

	if cmd.Trunk == "" {
		cmd.Trunk, err = repo.RemoteDefaultBranch(ctx, "origin")
		if err != nil {
			logger.Debug("could not determine remote default branch, falling back to current branch", "err", err)
			cmd.Trunk, err = repo.CurrentBranch(ctx)
			if err != nil {
				return fmt.Errorf("determine current branch: %w", err)
			}
		}
	}

	sess, err := openSession(ctx, logger, opts, cmd.Trunk)
	if err != nil {
		return err
	}

	sess.Engine.Tree.AddTrunk(cmd.Trunk)
	if err := sess.save(); err != nil {
		return err
	}
	logger.Info("initialized stack store", "trunk", cmd.Trunk)
	return nil
}
