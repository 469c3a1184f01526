package engine

import (
	"context"
	"fmt"
	"strings"

	"go.stacked.dev/st/internal/forge"
	"go.stacked.dev/st/internal/git"
	"go.stacked.dev/st/internal/stack"
)

// SubmitOptions configures a Submit run.
type SubmitOptions struct {
	// Force pushes branches with --force-with-lease, so a branch whose
	// local history has diverged from its remote head (after a restack,
	// say) can still be updated, as long as the remote head still
	// matches the last-fetched remote-tracking ref.
	Force bool
}

// Submit pushes names[1:] in dependency order, creating or updating
// one pull request per branch, then maintains a per-PR stack-overview
// comment across every branch that has one. names[0] must be the
// trunk; it is never pushed or given a pull request.
func (c *Context) Submit(ctx context.Context, names []string, opts SubmitOptions) error {
	if err := c.CheckCleanliness(ctx, names); err != nil {
		return err
	}

	branches := names[1:]
	deleted, err := c.DeleteClosedBranches(ctx, branches)
	if err != nil {
		return err
	}
	if deleted > 0 {
		c.Log.Warn("pruned branches with closed pull requests; run restack before continuing", "count", deleted)
	}

	for _, name := range branches {
		if err := c.submitBranch(ctx, name, opts); err != nil {
			return err
		}
	}

	for _, name := range branches {
		if err := c.syncComment(ctx, branches, name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) submitBranch(ctx context.Context, name string, opts SubmitOptions) error {
	b := c.Tree.Get(name)
	if b == nil {
		return &stack.BranchNotTrackedError{Name: name}
	}
	parent := b.Parent

	if b.Remote != nil {
		return c.submitExisting(ctx, name, b, parent, opts)
	}
	return c.submitNew(ctx, name, b, parent, opts)
}

func (c *Context) submitExisting(ctx context.Context, name string, b *stack.TrackedBranch, parent string, opts SubmitOptions) error {
	pull, err := c.Forge.GetPull(ctx, b.Remote.PRNumber)
	if err != nil {
		return fmt.Errorf("get pull #%d for %s: %w", b.Remote.PRNumber, name, err)
	}

	if pull.Base != parent {
		if err := c.Forge.UpdatePullBase(ctx, b.Remote.PRNumber, parent); err != nil {
			return fmt.Errorf("update pull #%d base: %w", b.Remote.PRNumber, err)
		}
	}

	head, err := c.Repo.FindBranch(ctx, name, git.Local)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", name, err)
	}
	if pull.HeadSHA == string(head) {
		return nil
	}

	if err := c.Repo.PushBranch(ctx, name, c.Tree.ActiveTrunk, "origin", opts.Force); err != nil {
		return fmt.Errorf("push %s: %w", name, err)
	}
	return nil
}

func (c *Context) submitNew(ctx context.Context, name string, b *stack.TrackedBranch, parent string, opts SubmitOptions) error {
	if _, err := c.Repo.FindBranch(ctx, parent, git.Remote); err != nil {
		return &BaseBranchNotOnRemoteError{Branch: parent}
	}

	if err := c.Repo.PushBranch(ctx, name, c.Tree.ActiveTrunk, "origin", opts.Force); err != nil {
		return fmt.Errorf("push %s: %w", name, err)
	}

	messages, err := c.Repo.CommitMessagesBetween(ctx, name, parent)
	if err != nil {
		messages = nil
	}
	diff, err := c.Repo.DiffBranches(ctx, name, parent)
	if err != nil {
		diff = "(diff unavailable)"
	}

	title, body, draft, err := c.composePullRequest(ctx, name, messages, diff)
	if err != nil {
		return fmt.Errorf("compose pull request for %s: %w", name, err)
	}

	number, err := c.Forge.CreatePull(ctx, forge.CreatePullRequest{
		Title: title,
		Head:  name,
		Base:  parent,
		Body:  body,
		Draft: draft,
	})
	if err != nil {
		return fmt.Errorf("create pull for %s: %w", name, err)
	}

	b.Remote = &stack.RemoteMetadata{PRNumber: number}
	return nil
}

func (c *Context) composePullRequest(ctx context.Context, name string, messages []string, diff string) (title, body string, draft bool, err error) {
	def := ""
	if len(messages) > 0 {
		def = messages[0]
	}
	title, err = c.UI.Text(fmt.Sprintf("Title for %s", name), def)
	if err != nil {
		return "", "", false, err
	}

	body, err = c.composeBody(ctx, name, messages, diff)
	if err != nil {
		return "", "", false, err
	}

	draft, err = c.UI.Confirm(fmt.Sprintf("Create %s as a draft pull request?", name), true)
	if err != nil {
		return "", "", false, err
	}
	return title, body, draft, nil
}

func (c *Context) composeBody(ctx context.Context, name string, messages []string, diff string) (string, error) {
	if c.AI != nil && c.Config != nil && c.Config.HasAI() {
		useAI, err := c.UI.Confirm("Draft the pull request body with AI?", false)
		if err != nil {
			return "", err
		}
		if useAI {
			body, genErr := c.AI.Generate(ctx, pullRequestPrompt(name, messages, diff))
			if genErr == nil {
				return body, nil
			}
			c.Log.Warn("AI body generation failed, falling back", "branch", name, "err", genErr)
		}
	}

	if len(messages) > 0 {
		fill, err := c.UI.Confirm("Fill the pull request body from the branch's commit messages?", true)
		if err != nil {
			return "", err
		}
		if fill {
			return strings.Join(messages, "\n\n"), nil
		}
	}

	return c.UI.Editor(fmt.Sprintf("Body for %s", name), "")
}

func pullRequestPrompt(name string, messages []string, diff string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a pull request description for branch %q.\n\n", name)
	if len(messages) > 0 {
		b.WriteString("Commit messages:\n")
		for _, m := range messages {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		b.WriteString("\n")
	}
	b.WriteString("Diff:\n")
	b.WriteString(diff)
	return b.String()
}

// syncComment renders the stack-overview comment for name's pull
// request, if it has one, and creates or updates it on the remote.
func (c *Context) syncComment(ctx context.Context, branches []string, name string) error {
	b := c.Tree.Get(name)
	if b == nil || b.Remote == nil {
		return nil
	}

	body := renderStackComment(c.Tree, branches, name)
	if b.Remote.CommentID != 0 {
		if err := c.Forge.UpdateIssueComment(ctx, b.Remote.CommentID, body); err != nil {
			return fmt.Errorf("update stack comment for %s: %w", name, err)
		}
		return nil
	}

	id, err := c.Forge.CreateIssueComment(ctx, b.Remote.PRNumber, body)
	if err != nil {
		return fmt.Errorf("create stack comment for %s: %w", name, err)
	}
	b.Remote.CommentID = id
	return nil
}

// renderStackComment renders the Markdown stack-overview comment
// body: every submitted branch in branches, top of stack first, each
// linked by PR number, with a marker on current, followed by the
// trunk name.
func renderStackComment(tree *stack.StackTree, branches []string, current string) string {
	var lines []string
	lines = append(lines, "Stack:", "")

	for i := len(branches) - 1; i >= 0; i-- {
		name := branches[i]
		b := tree.Get(name)
		if b == nil || b.Remote == nil {
			continue
		}
		line := fmt.Sprintf("- #%d", b.Remote.PRNumber)
		if name == current {
			line += " 👈"
		}
		lines = append(lines, line)
	}

	lines = append(lines, fmt.Sprintf("- `%s`", tree.ActiveTrunk))
	lines = append(lines, "", "_generated by st_")
	return strings.Join(lines, "\n")
}
