package git

import (
	"context"
	"fmt"
)

// Commit records a commit of the currently staged changes (or an
// empty commit, if allowEmpty and nothing is staged) with message.
func (r *Repository) Commit(ctx context.Context, message string, allowEmpty bool) error {
	args := []string{"commit", "--message", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	if err := r.gitCmd(ctx, args...).Run(r.exec); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}
