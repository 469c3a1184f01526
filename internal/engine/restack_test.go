package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.stacked.dev/st/internal/engine"
	"go.stacked.dev/st/internal/git"
	"go.stacked.dev/st/internal/stack"
)

func TestRestack_noopWhenCurrent(t *testing.T) {
	repo := newTestRepo(t)
	tree, dir := buildStack(t, repo)
	runGit(t, dir, "checkout", "main")

	c := newContext(t, repo, tree)
	require.NoError(t, c.Restack(context.Background()))

	aHead, err := repo.FindBranch(context.Background(), "a", git.Local)
	require.NoError(t, err)
	assert.Equal(t, string(aHead), tree.Get("b").ParentOIDCache)
}

func TestRestack_rebasesStaleBranch(t *testing.T) {
	repo := newTestRepo(t)
	tree, dir := buildStack(t, repo)
	ctx := context.Background()

	runGit(t, dir, "checkout", "main")
	writeFileAndCommit(t, dir, "main2.txt", "x", "advance main")
	newMainHead, err := repo.FindBranch(ctx, "main", git.Local)
	require.NoError(t, err)

	runGit(t, dir, "checkout", "b")

	c := newContext(t, repo, tree)
	require.NoError(t, c.Restack(ctx))

	aHead, err := repo.FindBranch(ctx, "a", git.Local)
	require.NoError(t, err)
	assert.Equal(t, string(newMainHead), tree.Get("a").ParentOIDCache)
	assert.Equal(t, string(aHead), tree.Get("b").ParentOIDCache)
}

func TestRestack_missingCache(t *testing.T) {
	repo := newTestRepo(t)
	tree, dir := buildStack(t, repo)
	runGit(t, dir, "checkout", "main")
	writeFileAndCommit(t, dir, "main2.txt", "x", "advance main")

	tree.Get("a").ParentOIDCache = ""

	c := newContext(t, repo, tree)
	err := c.Restack(context.Background())
	var missing *engine.MissingParentOidCacheError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "a", missing.Branch)
}

func TestRestack_conflict(t *testing.T) {
	repo := newTestRepo(t)
	dir := repo.Root()
	ctx := context.Background()

	writeFileAndCommit(t, dir, "f.txt", "base\n", "add f")

	mainHead, err := repo.FindBranch(ctx, "main", git.Local)
	require.NoError(t, err)

	require.NoError(t, repo.CreateBranch(ctx, "a", ""))
	tree := stack.New("main")
	require.NoError(t, tree.Insert("main", string(mainHead), "a"))

	require.NoError(t, repo.Checkout(ctx, "a"))
	writeFileAndCommit(t, dir, "f.txt", "conflicting feature change\n", "change f on a")

	runGit(t, dir, "checkout", "main")
	writeFileAndCommit(t, dir, "f.txt", "conflicting main change\n", "change f on main")

	c := newContext(t, repo, tree)
	err = c.Restack(ctx)
	require.Error(t, err)

	var conflict *engine.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "a", conflict.Branch)

	require.NoError(t, repo.RebaseAbort(ctx))
}
