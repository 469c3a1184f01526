package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerAndRepository_noOrigin(t *testing.T) {
	repo := initTestRepo(t)
	_, _, err := repo.OwnerAndRepository(t.Context())
	assert.ErrorIs(t, err, ErrRemoteNotFound)
}

func TestOwnerAndRepository_https(t *testing.T) {
	repo := initTestRepo(t)
	dir := repo.Root()
	runGit(t, dir, "remote", "add", "origin", "https://github.com/example/widget.git")

	owner, name, err := repo.OwnerAndRepository(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "example", owner)
	assert.Equal(t, "widget", name)
}

func TestOwnerAndRepository_ssh(t *testing.T) {
	repo := initTestRepo(t)
	dir := repo.Root()
	runGit(t, dir, "remote", "add", "origin", "git@github.com:example/widget.git")

	owner, name, err := repo.OwnerAndRepository(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "example", owner)
	assert.Equal(t, "widget", name)
}

func TestRemoteDefaultBranch(t *testing.T) {
	repo := initTestRepo(t)
	dir := repo.Root()
	runGit(t, dir, "remote", "add", "origin", "https://github.com/example/widget.git")
	runGit(t, dir, "update-ref", "refs/remotes/origin/trunk", "HEAD")
	runGit(t, dir, "symbolic-ref", "refs/remotes/origin/HEAD", "refs/remotes/origin/trunk")

	branch, err := repo.RemoteDefaultBranch(t.Context(), "origin")
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)
}

func TestRemoteDefaultBranch_noHead(t *testing.T) {
	repo := initTestRepo(t)
	dir := repo.Root()
	runGit(t, dir, "remote", "add", "origin", "https://github.com/example/widget.git")

	_, err := repo.RemoteDefaultBranch(t.Context(), "origin")
	assert.Error(t, err)
}

