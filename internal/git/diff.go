package git

import (
	"context"
	"fmt"
	"strings"
)

// CommitMessagesBetween returns the subject lines of the commits
// reachable from branch but not from base, oldest first.
func (r *Repository) CommitMessagesBetween(ctx context.Context, branch, base string) ([]string, error) {
	out, err := r.gitCmd(ctx, "log", "--reverse", "--format=%s", base+".."+branch).
		OutputString(r.exec)
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// DiffBranches returns the unified diff of base...branch.
func (r *Repository) DiffBranches(ctx context.Context, branch, base string) (string, error) {
	out, err := r.gitCmd(ctx, "diff", base+"..."+branch).OutputString(r.exec)
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return out, nil
}
