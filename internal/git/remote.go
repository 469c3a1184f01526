package git

import (
	"context"
	"fmt"
	"strings"

	giturls "github.com/chainguard-dev/git-urls"
)

// ErrRemoteNotFound is returned by OwnerAndRepository when the origin
// remote is missing or its URL cannot be parsed into an owner/repo
// pair.
var ErrRemoteNotFound = fmt.Errorf("remote not found")

// OwnerAndRepository parses the configured origin remote URL into its
// owner and repository name.
func (r *Repository) OwnerAndRepository(ctx context.Context) (owner, repo string, err error) {
	out, err := r.gitCmd(ctx, "remote", "get-url", "origin").OutputString(r.exec)
	if err != nil {
		return "", "", ErrRemoteNotFound
	}

	u, err := giturls.Parse(out)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrRemoteNotFound, err)
	}

	path := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", "", ErrRemoteNotFound
	}

	owner, repo = path[:idx], path[idx+1:]
	if owner == "" || repo == "" {
		return "", "", ErrRemoteNotFound
	}
	return owner, repo, nil
}

// RemoteDefaultBranch reports the default branch of remote, as recorded
// in its HEAD symbolic ref. Callers should have fetched the remote (or
// cloned from it) at least once, since that is what populates
// refs/remotes/<remote>/HEAD.
func (r *Repository) RemoteDefaultBranch(ctx context.Context, remote string) (string, error) {
	ref, err := r.gitCmd(ctx, "symbolic-ref", "--short", "refs/remotes/"+remote+"/HEAD").OutputString(r.exec)
	if err != nil {
		return "", fmt.Errorf("symbolic-ref: %w", err)
	}
	return strings.TrimPrefix(ref, remote+"/"), nil
}
