// Package engine binds the repository adapter and the persisted stack
// tree together and implements the derived operations commands drive:
// stack discovery, cleanliness checks, closed-PR pruning, restacking,
// and submission.
package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"go.stacked.dev/st/internal/ai"
	"go.stacked.dev/st/internal/config"
	"go.stacked.dev/st/internal/forge"
	"go.stacked.dev/st/internal/git"
	"go.stacked.dev/st/internal/stack"
	"go.stacked.dev/st/internal/ui"
)

// Context binds a live repository adapter to a mutable stack tree and
// the remote and interactive collaborators commands need. Every
// engine operation reads and writes through the Tree field directly;
// callers persist it via a store.Store after a command completes.
type Context struct {
	Repo  *git.Repository
	Tree  *stack.StackTree
	Forge forge.Repository
	UI    ui.Prompter
	Log   *log.Logger

	// Config is the user's global configuration. Nil only in tests
	// that do not exercise AI-assisted body generation.
	Config *config.Config

	// AI is the optional PR-body generator. Submit probes its
	// availability (Config.HasAI() and AI != nil) before ever
	// offering it; it never assumes presence.
	AI ai.Generator
}

// DiscoverStack returns the topological slice covering the current
// branch: the trunk, then the chain from the trunk down to the
// current branch, then the subtree rooted at the current branch
// (parents before children). If the current branch is the trunk, it
// returns every tracked branch of the active trunk.
func (c *Context) DiscoverStack(ctx context.Context) ([]string, error) {
	current, err := c.Repo.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover stack: %w", err)
	}

	if current == c.Tree.ActiveTrunk {
		return c.Tree.Branches(), nil
	}

	if c.Tree.Get(current) == nil {
		return nil, &stack.BranchNotTrackedError{Name: current}
	}

	chain := chainToTrunk(c.Tree, current)
	names := append([]string{}, chain...)
	names = append(names, subtreeDescendants(c.Tree, current)...)
	return names, nil
}

// chainToTrunk returns the path from the active trunk down to name,
// trunk first.
func chainToTrunk(tree *stack.StackTree, name string) []string {
	var reversed []string
	for n := name; ; {
		reversed = append(reversed, n)
		b := tree.Get(n)
		if b == nil || b.IsTrunk() {
			break
		}
		n = b.Parent
	}

	chain := make([]string, len(reversed))
	for i, n := range reversed {
		chain[len(reversed)-1-i] = n
	}
	return chain
}

// subtreeDescendants returns every branch below name in the active
// trunk's tree, in pre-order (parents before children), excluding
// name itself.
func subtreeDescendants(tree *stack.StackTree, name string) []string {
	var names []string
	var visit func(string)
	visit = func(n string) {
		b := tree.Get(n)
		if b == nil {
			return
		}
		for _, child := range b.SortedChildren() {
			names = append(names, child)
			visit(child)
		}
	}
	visit(name)
	return names
}

// CheckCleanliness fails with ErrWorkingTreeDirty if the working copy
// has uncommitted changes, or with *NeedsRestackError for the first
// branch in names whose cached parent commit id disagrees with its
// parent's current commit id.
func (c *Context) CheckCleanliness(ctx context.Context, names []string) error {
	dirty, err := c.Repo.IsWorkingTreeDirty(ctx)
	if err != nil {
		return fmt.Errorf("check working tree: %w", err)
	}
	if dirty {
		return ErrWorkingTreeDirty
	}

	for _, name := range names {
		b := c.Tree.Get(name)
		if b == nil || b.IsTrunk() {
			continue
		}

		parentHead, err := c.Repo.FindBranch(ctx, b.Parent, git.Local)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", b.Parent, err)
		}
		if string(parentHead) != b.ParentOIDCache {
			return &NeedsRestackError{Branch: name}
		}
	}
	return nil
}

// DeleteClosedBranches checks the remote PR state of every branch in
// names that has remote metadata. For each merged or closed PR, it
// prompts the user for confirmation and, if confirmed, deletes the
// branch from the tree and from the local repository. It returns the
// number of branches deleted.
func (c *Context) DeleteClosedBranches(ctx context.Context, names []string) (int, error) {
	deleted := 0
	for _, name := range names {
		b := c.Tree.Get(name)
		if b == nil || b.Remote == nil {
			continue
		}

		pull, err := c.Forge.GetPull(ctx, b.Remote.PRNumber)
		if err != nil {
			return deleted, fmt.Errorf("get pull #%d for %s: %w", b.Remote.PRNumber, name, err)
		}
		if !pull.Closed {
			continue
		}

		ok, err := c.UI.Confirm(
			fmt.Sprintf("%s's pull request #%d is closed. Delete the branch?", name, b.Remote.PRNumber),
			false,
		)
		if err != nil {
			return deleted, fmt.Errorf("confirm delete %s: %w", name, err)
		}
		if !ok {
			continue
		}

		if err := c.Tree.Delete(name); err != nil {
			return deleted, fmt.Errorf("untrack %s: %w", name, err)
		}
		if err := c.Repo.DeleteBranch(ctx, name); err != nil {
			c.Log.Warn("failed to delete local branch", "branch", name, "err", err)
		}
		deleted++
	}
	return deleted, nil
}
