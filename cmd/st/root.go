package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

type globalOptions struct {
	Token string `name:"token" env:"GITHUB_TOKEN" help:"GitHub API token; defaults to the value in the global configuration file"`
}

type rootCmd struct {
	globalOptions

	Verbose bool `short:"v" help:"Enable verbose (debug) logging"`

	Trunk  trunkCmd  `cmd:"" help:"Manage tracked trunk branches"`
	Branch branchCmd `cmd:"" help:"Manage tracked branches"`

	Submit  submitCmd  `cmd:"" help:"Push the stack and open or update its pull requests"`
	Restack restackCmd `cmd:"" help:"Rebase tracked branches onto their current parents"`

	Repo repoCmd `cmd:"" help:"Manage the repository's stack store"`

	Version    kong.VersionFlag `help:"Print version information and quit"`
	VersionCmd versionCmd       `cmd:"version" name:"version" help:"Print version information"`
}

func (cmd *rootCmd) AfterApply(logger *log.Logger) error {
	if cmd.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return nil
}

type branchCmd struct {
	Track   branchTrackCmd   `cmd:"" help:"Track an existing branch"`
	Untrack branchUntrackCmd `cmd:"" help:"Stop tracking a branch"`
	Create  branchCreateCmd  `cmd:"" help:"Create a new branch stacked on the current one"`
}

type repoCmd struct {
	Init repoInitCmd `cmd:"" help:"Initialize the stack store for this repository"`
}
