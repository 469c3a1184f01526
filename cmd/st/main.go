// Command st manages stacks of dependent branches in a git repository
// and synchronizes them with a pull-request platform.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

func main() {
	logger := log.New(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		<-sigc
		logger.Warn("interrupted, cleaning up")
		cancel()
	}()

	var cmd rootCmd
	kctx := kong.Parse(
		&cmd,
		kong.Name("st"),
		kong.Description("Manage stacks of dependent branches and their pull requests."),
		kong.Bind(logger, &cmd.globalOptions),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	kctx.FatalIfErrorf(kctx.Run())
}
