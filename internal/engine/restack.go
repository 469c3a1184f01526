package engine

import (
	"context"
	"errors"
	"fmt"

	"go.stacked.dev/st/internal/git"
)

// Restack traverses the active trunk's branches in parent-before-child
// order and rebases every non-trunk branch whose cached parent commit
// id no longer matches its parent's current commit id. It updates the
// cache on success. Restack stops and returns the first conflict it
// encounters; the caller resolves it out of band and re-invokes, which
// is safe because Restack is idempotent with respect to branches
// already current.
func (c *Context) Restack(ctx context.Context) error {
	for _, name := range c.Tree.Branches() {
		if err := c.restackOne(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) restackOne(ctx context.Context, name string) error {
	b := c.Tree.Get(name)
	if b == nil || b.IsTrunk() {
		return nil
	}

	parentHead, err := c.Repo.FindBranch(ctx, b.Parent, git.Local)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", b.Parent, err)
	}
	newBase := string(parentHead)

	if b.ParentOIDCache == newBase {
		return nil
	}
	if b.ParentOIDCache == "" {
		return &MissingParentOidCacheError{Branch: name}
	}

	upstream := b.ParentOIDCache
	branchHead, err := c.Repo.FindBranch(ctx, name, git.Local)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", name, err)
	}

	if !c.Repo.IsAncestor(ctx, git.Hash(upstream), branchHead) {
		// The cached parent id is no longer part of the branch's own
		// history: the parent was rewritten more aggressively than a
		// simple amend. Fall back to the fork point between the
		// branch and its parent as the rebase pivot instead of
		// failing outright.
		if forkPoint, fpErr := c.Repo.ForkPoint(ctx, b.Parent, name); fpErr == nil && !forkPoint.IsZero() {
			upstream = forkPoint.String()
		}
	}

	if err := c.Repo.RebaseOnto(ctx, name, upstream, newBase); err != nil {
		var conflict *git.ConflictState
		if errors.As(err, &conflict) {
			return &ConflictError{Branch: name, Err: err}
		}
		return fmt.Errorf("rebase %s: %w", name, err)
	}

	b.ParentOIDCache = newBase
	return nil
}
