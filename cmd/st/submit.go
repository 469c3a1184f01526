package main

import (
	"context"

	"github.com/charmbracelet/log"

	"go.stacked.dev/st/internal/engine"
)

type submitCmd struct {
	All   bool `help:"Submit every tracked branch of the active trunk, not just the current stack"`
	Force bool `help:"Push with --force-with-lease even if the remote has diverged"`
}

func (cmd *submitCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}

	var names []string
	if cmd.All {
		names = sess.Engine.Tree.Branches()
	} else {
		names, err = sess.Engine.DiscoverStack(ctx)
		if err != nil {
			return err
		}
	}

	if err := sess.Engine.Submit(ctx, names, engine.SubmitOptions{Force: cmd.Force}); err != nil {
		return err
	}
	return sess.save()
}
