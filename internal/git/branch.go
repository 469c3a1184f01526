package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrDetachedHead indicates that the repository is unexpectedly in
// detached HEAD state.
var ErrDetachedHead = errors.New("in detached HEAD state")

// CurrentBranch reports the current branch name.
// It returns [ErrDetachedHead] if the repository is in detached HEAD state.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	name, err := r.gitCmd(ctx, "branch", "--show-current").OutputString(r.exec)
	if err != nil {
		return "", fmt.Errorf("git branch --show-current: %w", err)
	}
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return "", ErrDetachedHead
	}
	return name, nil
}

// BranchLocation specifies where to look up a branch.
type BranchLocation int

const (
	// Local looks up a local branch.
	Local BranchLocation = iota

	// Remote looks up a remote-tracking branch under "origin/".
	Remote
)

// FindBranch reports whether name exists at the given location,
// returning its current commit id if so.
func (r *Repository) FindBranch(ctx context.Context, name string, where BranchLocation) (Hash, error) {
	ref := "refs/heads/" + name
	if where == Remote {
		ref = "refs/remotes/origin/" + name
	}
	return r.revParse(ctx, ref)
}

// Checkout switches to the specified branch.
func (r *Repository) Checkout(ctx context.Context, branch string) error {
	if err := r.gitCmd(ctx, "checkout", branch).Run(r.exec); err != nil {
		return fmt.Errorf("git checkout: %w", err)
	}
	return nil
}

// CreateBranch creates a new branch starting at head (or the current
// HEAD, if head is empty), and fails if the name is already taken.
func (r *Repository) CreateBranch(ctx context.Context, name, head string) error {
	args := []string{"branch", name}
	if head != "" {
		args = append(args, head)
	}
	if err := r.gitCmd(ctx, args...).Run(r.exec); err != nil {
		return fmt.Errorf("git branch: %w", err)
	}
	return nil
}

// DeleteBranch deletes a local branch, forcibly so unmerged commits do
// not block deletion: the tracked branch's history is assumed to live
// on in its reparented children or on the remote.
func (r *Repository) DeleteBranch(ctx context.Context, name string) error {
	if err := r.gitCmd(ctx, "branch", "--delete", "--force", name).Run(r.exec); err != nil {
		return fmt.Errorf("git branch: %w", err)
	}
	return nil
}
