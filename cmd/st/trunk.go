package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"go.stacked.dev/st/internal/git"
)

type trunkCmd struct {
	List   trunkListCmd   `cmd:"" help:"List tracked trunks"`
	Switch trunkSwitchCmd `cmd:"" help:"Switch the active trunk"`
	Add    trunkAddCmd    `cmd:"" help:"Start tracking a new trunk"`
	Remove trunkRemoveCmd `cmd:"" help:"Stop tracking a trunk"`
}

type trunkListCmd struct{}

func (*trunkListCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}

	for _, name := range sess.Engine.Tree.ListTrunks() {
		marker := "  "
		if name == sess.Engine.Tree.ActiveTrunk {
			marker = "* "
		}
		fmt.Println(marker + name)
	}
	return nil
}

type trunkSwitchCmd struct {
	Name string `arg:"" help:"Trunk to make active"`
}

func (cmd *trunkSwitchCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}

	if err := sess.Engine.Tree.SwitchTrunk(cmd.Name); err != nil {
		return err
	}
	return sess.save()
}

type trunkAddCmd struct {
	Name string `arg:"" help:"Trunk branch to start tracking"`
}

func (cmd *trunkAddCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, cmd.Name)
	if err != nil {
		return err
	}

	if _, err := sess.Engine.Repo.FindBranch(ctx, cmd.Name, git.Local); err != nil {
		return fmt.Errorf("branch %q does not exist in the repository", cmd.Name)
	}

	sess.Engine.Tree.AddTrunk(cmd.Name)
	return sess.save()
}

type trunkRemoveCmd struct {
	Name string `arg:"" help:"Trunk to stop tracking"`
}

func (cmd *trunkRemoveCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}

	ok, err := sess.Engine.UI.Confirm(
		fmt.Sprintf("Stop tracking trunk %q and every branch stacked on it?", cmd.Name),
		false,
	)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := sess.Engine.Tree.RemoveTrunk(cmd.Name); err != nil {
		return err
	}
	return sess.save()
}
