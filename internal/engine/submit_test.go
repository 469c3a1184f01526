package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.stacked.dev/st/internal/engine"
	"go.stacked.dev/st/internal/forge"
	"go.stacked.dev/st/internal/git"
	"go.stacked.dev/st/internal/stack"
	"go.stacked.dev/st/internal/ui"
)

func addOrigin(t *testing.T, repo *git.Repository) {
	t.Helper()
	bare := t.TempDir()
	cmd := []string{"init", "--bare", "--initial-branch=main"}
	runGit(t, bare, cmd...)
	runGit(t, repo.Root(), "remote", "add", "origin", bare)
	runGit(t, repo.Root(), "push", "origin", "main")
}

func TestSubmit_dirtyAborts(t *testing.T) {
	repo := newTestRepo(t)
	tree, dir := buildStack(t, repo)
	addOrigin(t, repo)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x"), 0o644))

	c := newContext(t, repo, tree)
	err := c.Submit(context.Background(), []string{"main", "a", "b"}, engine.SubmitOptions{})
	assert.ErrorIs(t, err, engine.ErrWorkingTreeDirty)
}

func TestSubmit_createsNewPullRequests(t *testing.T) {
	repo := newTestRepo(t)
	tree, dir := buildStack(t, repo)
	addOrigin(t, repo)
	runGit(t, dir, "checkout", "main")

	fake := forge.NewFake()
	prompter := &ui.Fake{
		Texts:    []string{"Add a", "Add b"},
		Confirms: []bool{true, false, true, false},
	}

	c := newContext(t, repo, tree)
	c.Forge = fake
	c.UI = prompter

	err := c.Submit(context.Background(), []string{"main", "a", "b"}, engine.SubmitOptions{})
	require.NoError(t, err)

	aMeta := tree.Get("a").Remote
	bMeta := tree.Get("b").Remote
	require.NotNil(t, aMeta)
	require.NotNil(t, bMeta)
	assert.NotZero(t, aMeta.PRNumber)
	assert.NotZero(t, bMeta.PRNumber)
	assert.NotZero(t, aMeta.CommentID)
	assert.NotZero(t, bMeta.CommentID)

	assert.Contains(t, fake.Comments[aMeta.CommentID], "#"+strconv.FormatUint(bMeta.PRNumber, 10))
	assert.Contains(t, fake.Comments[aMeta.CommentID], "`main`")
}

func TestSubmit_baseBranchNotOnRemote(t *testing.T) {
	repo := newTestRepo(t)
	tree, dir := buildStack(t, repo)
	addOrigin(t, repo)
	runGit(t, dir, "checkout", "main")

	// Remove main's remote-tracking ref so "a"'s base looks unpublished.
	runGit(t, dir, "update-ref", "-d", "refs/remotes/origin/main")

	c := newContext(t, repo, tree)
	c.UI = &ui.Fake{Texts: []string{"Add a"}, Confirms: []bool{true, false}}

	err := c.Submit(context.Background(), []string{"main", "a", "b"}, engine.SubmitOptions{})
	var baseErr *engine.BaseBranchNotOnRemoteError
	require.ErrorAs(t, err, &baseErr)
	assert.Equal(t, "main", baseErr.Branch)
}

func TestSubmit_reparentsExistingPull(t *testing.T) {
	repo := newTestRepo(t)
	tree, dir := buildStack(t, repo)
	runGit(t, dir, "checkout", "main")

	aHead, err := repo.FindBranch(context.Background(), "a", git.Local)
	require.NoError(t, err)
	bHead, err := repo.FindBranch(context.Background(), "b", git.Local)
	require.NoError(t, err)

	tree.Get("a").Remote = &stack.RemoteMetadata{PRNumber: 1}
	tree.Get("b").Remote = &stack.RemoteMetadata{PRNumber: 2}

	fake := forge.NewFake()
	fake.Pulls[1] = &forge.Pull{Number: 1, Base: "main", HeadSHA: string(aHead)}
	fake.Pulls[2] = &forge.Pull{Number: 2, Base: "stale-parent", HeadSHA: string(bHead)}

	c := newContext(t, repo, tree)
	c.Forge = fake

	require.NoError(t, c.Submit(context.Background(), []string{"main", "a", "b"}, engine.SubmitOptions{}))

	assert.Equal(t, "a", fake.Pulls[2].Base)
}
