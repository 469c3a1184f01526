package git

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// InitOptions configures the behavior of Init.
type InitOptions struct {
	// Log specifies the logger to use for messages.
	Log *log.Logger

	// Branch is the name of the initial trunk branch to create.
	// Defaults to "main".
	Branch string

	exec execer
}

// Init initializes a new git repository at the given directory.
func Init(ctx context.Context, dir string, opts InitOptions) (*Repository, error) {
	if opts.exec == nil {
		opts.exec = _realExec
	}
	if opts.Branch == "" {
		opts.Branch = "main"
	}

	initCmd := newGitCmd(ctx, opts.Log, dir,
		"init",
		"--initial-branch="+opts.Branch,
	)
	if err := initCmd.Run(opts.exec); err != nil {
		return nil, fmt.Errorf("git init: %w", err)
	}

	return Open(ctx, dir, OpenOptions{Log: opts.Log, exec: opts.exec})
}

// OpenOptions configures the behavior of Open.
type OpenOptions struct {
	// Log specifies the logger to use for messages.
	Log *log.Logger

	exec execer
}

// Open opens the repository at the given directory.
func Open(ctx context.Context, dir string, opts OpenOptions) (*Repository, error) {
	if opts.exec == nil {
		opts.exec = _realExec
	}
	if opts.Log == nil {
		opts.Log = log.New(io.Discard)
	}

	out, err := newGitCmd(ctx, opts.Log, dir,
		"rev-parse",
		"--show-toplevel",
		"--absolute-git-dir",
	).OutputString(opts.exec)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	root, gitDir, ok := strings.Cut(out, "\n")
	if !ok {
		return nil, fmt.Errorf("unexpected output from git rev-parse: %q", out)
	}

	return newRepository(root, gitDir, opts.Log, opts.exec), nil
}

// Repository is a handle to a git repository, restricted to the
// capabilities the stacking engines need.
type Repository struct {
	root   string
	gitDir string

	log  *log.Logger
	exec execer
}

func newRepository(root, gitDir string, logger *log.Logger, exec execer) *Repository {
	return &Repository{root: root, gitDir: gitDir, log: logger, exec: exec}
}

// Root returns the repository's working tree root.
func (r *Repository) Root() string { return r.root }

// GitDir returns the absolute git directory of the opened working tree
// (for a linked worktree, that worktree's own directory under
// .git/worktrees, not the common one), the conventional home of the
// stack store.
func (r *Repository) GitDir() string { return r.gitDir }

// gitCmd returns a gitCmd that will run with the repository's root as
// the working directory.
func (r *Repository) gitCmd(ctx context.Context, args ...string) *gitCmd {
	return newGitCmd(ctx, r.log, r.root, args...)
}
