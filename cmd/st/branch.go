package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"go.stacked.dev/st/internal/engine"
	"go.stacked.dev/st/internal/git"
)

type branchTrackCmd struct {
	Parent string `short:"p" help:"Parent branch this stacks on"`
	Branch string `arg:"" optional:"" help:"Branch to track; defaults to the current branch"`
}

func (cmd *branchTrackCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}
	repo := sess.Engine.Repo

	if cmd.Branch == "" {
		cmd.Branch, err = repo.CurrentBranch(ctx)
		if err != nil {
			return fmt.Errorf("determine current branch: %w", err)
		}
	}
	if cmd.Parent == "" {
		cmd.Parent = sess.Engine.Tree.ActiveTrunk
	}

	parentHead, err := repo.FindBranch(ctx, cmd.Parent, git.Local)
	if err != nil {
		return fmt.Errorf("resolve parent %s: %w", cmd.Parent, err)
	}

	if err := sess.Engine.Tree.Insert(cmd.Parent, string(parentHead), cmd.Branch); err != nil {
		return err
	}
	logger.Info("tracking branch", "branch", cmd.Branch, "parent", cmd.Parent)
	return sess.save()
}

type branchUntrackCmd struct {
	Branch string `arg:"" optional:"" help:"Branch to stop tracking; defaults to the current branch"`
}

func (cmd *branchUntrackCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}

	if cmd.Branch == "" {
		cmd.Branch, err = sess.Engine.Repo.CurrentBranch(ctx)
		if err != nil {
			return fmt.Errorf("determine current branch: %w", err)
		}
	}

	if err := sess.Engine.Tree.Delete(cmd.Branch); err != nil {
		return err
	}
	logger.Info("untracked branch", "branch", cmd.Branch)
	return sess.save()
}

type branchCreateCmd struct {
	Name    string `arg:"" help:"Name of the new branch"`
	Message string `short:"m" help:"Commit message for the branch's first commit"`
}

func (cmd *branchCreateCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	if cmd.Message == "" {
		return engine.ErrCommitMessageRequired
	}

	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}
	repo := sess.Engine.Repo

	parent, err := repo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("determine current branch: %w", err)
	}
	parentHead, err := repo.FindBranch(ctx, parent, git.Local)
	if err != nil {
		return fmt.Errorf("resolve parent %s: %w", parent, err)
	}

	if err := repo.CreateBranch(ctx, cmd.Name, ""); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	if err := repo.Checkout(ctx, cmd.Name); err != nil {
		return fmt.Errorf("checkout %s: %w", cmd.Name, err)
	}
	if err := repo.Commit(ctx, cmd.Message, true); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if err := sess.Engine.Tree.Insert(parent, string(parentHead), cmd.Name); err != nil {
		return err
	}
	logger.Info("created branch", "branch", cmd.Name, "parent", parent)
	return sess.save()
}
