package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrRebaseConflict is returned by RebaseOnto when the replay stops
// because of a merge conflict, leaving the repository in the middle
// of an in-progress rebase.
var ErrRebaseConflict = errors.New("rebase stopped due to a conflict")

// ConflictState describes the point at which a rebase conflict
// occurred. It satisfies the error interface so it can be inspected
// with errors.As against the error chain returned by RebaseOnto.
type ConflictState struct {
	// Branch is the branch being rebased.
	Branch string

	// Step is the one-based index of the commit being replayed when
	// the conflict occurred.
	Step int

	// Total is the total number of commits being replayed.
	Total int
}

func (c *ConflictState) Error() string {
	return fmt.Sprintf("%s: conflict at step %d/%d", c.Branch, c.Step, c.Total)
}

// RebaseOnto replays the commits of branch that are not reachable from
// upstream onto newBase, in effect moving branch's history to sit atop
// newBase. upstream is usually the cached parent commit of branch
// before the rebase.
//
// If the replay stops on a conflict, RebaseOnto returns an error
// wrapping both ErrRebaseConflict and a *ConflictState describing
// where it stopped. The rebase is left in progress; the caller must
// resolve the conflict and run "git rebase --continue" out of band,
// or call RebaseAbort to discard the attempt.
func (r *Repository) RebaseOnto(ctx context.Context, branch, upstream, newBase string) error {
	err := r.gitCmd(ctx, "rebase", "--onto", newBase, upstream, branch).Run(r.exec)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("rebase: %w", err)
	}

	state, stateErr := r.loadRebaseState(branch)
	if stateErr != nil {
		// The command failed for a reason other than a conflict
		// that left rebase state behind.
		return fmt.Errorf("rebase: %w", err)
	}

	return errors.Join(ErrRebaseConflict, state)
}

// RebaseAbort aborts an in-progress rebase, restoring the branch to
// its state before RebaseOnto was called.
func (r *Repository) RebaseAbort(ctx context.Context) error {
	if err := r.gitCmd(ctx, "rebase", "--abort").Run(r.exec); err != nil {
		return fmt.Errorf("rebase abort: %w", err)
	}
	return nil
}

// RebaseContinue resumes an in-progress rebase after its conflicts
// have been resolved and staged.
func (r *Repository) RebaseContinue(ctx context.Context) error {
	if err := r.gitCmd(ctx, "rebase", "--continue").Run(r.exec); err != nil {
		return fmt.Errorf("rebase continue: %w", err)
	}
	return nil
}

// loadRebaseState reads the step/total progress of an in-progress
// rebase from .git/rebase-merge or .git/rebase-apply.
//
// See
// https://github.com/git/git/blob/d8ab1d464d07baa30e5a180eb33b3f9aa5c93adf/wt-status.c#L1711
// for the layout of these directories.
func (r *Repository) loadRebaseState(branch string) (*ConflictState, error) {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		stateDir := filepath.Join(r.gitDir, dir)
		if _, err := os.Stat(stateDir); err != nil {
			continue
		}

		msgnum, err := os.ReadFile(filepath.Join(stateDir, "msgnum"))
		if err != nil {
			continue
		}
		end, err := os.ReadFile(filepath.Join(stateDir, "end"))
		if err != nil {
			continue
		}

		step, _ := strconv.Atoi(strings.TrimSpace(string(msgnum)))
		total, _ := strconv.Atoi(strings.TrimSpace(string(end)))

		return &ConflictState{Branch: branch, Step: step, Total: total}, nil
	}

	return nil, errors.New("no rebase in progress")
}
