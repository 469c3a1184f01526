package git

import (
	"context"
	"fmt"
)

// IsWorkingTreeDirty reports whether the working copy has uncommitted
// changes (staged or unstaged).
func (r *Repository) IsWorkingTreeDirty(ctx context.Context) (bool, error) {
	out, err := r.gitCmd(ctx, "status", "--porcelain").OutputString(r.exec)
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return out != "", nil
}
