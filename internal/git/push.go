package git

import (
	"context"
	"fmt"
)

// ErrRefusedTrunkPush is returned by PushBranch when asked to push the
// active trunk: the core never pushes trunks, only stacked children.
var ErrRefusedTrunkPush = fmt.Errorf("refusing to push the trunk branch")

// PushBranch pushes name to remote, with --force-with-lease when force
// is set, unless name equals trunk, in which case it fails with
// ErrRefusedTrunkPush.
func (r *Repository) PushBranch(ctx context.Context, name, trunk, remote string, force bool) error {
	if name == trunk {
		return ErrRefusedTrunkPush
	}

	args := []string{"push"}
	if force {
		args = append(args, "--force-with-lease")
	}
	args = append(args, remote, name)

	if err := r.gitCmd(ctx, args...).Run(r.exec); err != nil {
		return fmt.Errorf("push %s: %w", name, err)
	}
	return nil
}
