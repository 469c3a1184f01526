package main

import (
	"context"
	"fmt"
)

// version is overridden at build time via -ldflags.
var version = "dev"

type versionCmd struct{}

func (cmd *versionCmd) Run(ctx context.Context) error {
	fmt.Println("st", version)
	return nil
}
