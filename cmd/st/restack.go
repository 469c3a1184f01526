package main

import (
	"context"

	"github.com/charmbracelet/log"
)

type restackCmd struct{}

func (cmd *restackCmd) Run(ctx context.Context, logger *log.Logger, opts *globalOptions) error {
	sess, err := openSession(ctx, logger, opts, "main")
	if err != nil {
		return err
	}

	if err := sess.Engine.Restack(ctx); err != nil {
		return err
	}
	return sess.save()
}
