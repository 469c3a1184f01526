package forge

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// GitHub implements Repository against the GitHub REST API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHub builds a GitHub-backed Repository for owner/repo,
// authenticating with token.
func NewGitHub(ctx context.Context, token, owner, repo string) *GitHub {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)
	return &GitHub{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}
}

var _ Repository = (*GitHub)(nil)

// GetPull fetches a pull request's current base and head state.
func (g *GitHub) GetPull(ctx context.Context, number uint64) (*Pull, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, g.owner, g.repo, int(number))
	if err != nil {
		return nil, fmt.Errorf("get pull #%d: %w", number, err)
	}

	return &Pull{
		Number:  number,
		Base:    pr.GetBase().GetRef(),
		HeadSHA: pr.GetHead().GetSHA(),
		Closed:  pr.GetState() == "closed",
	}, nil
}

// UpdatePullBase re-parents an existing pull request onto a new base
// branch.
func (g *GitHub) UpdatePullBase(ctx context.Context, number uint64, base string) error {
	_, _, err := g.client.PullRequests.Edit(ctx, g.owner, g.repo, int(number), &github.PullRequest{
		Base: &github.PullRequestBranch{Ref: github.String(base)},
	})
	if err != nil {
		return fmt.Errorf("update pull #%d base: %w", number, err)
	}
	return nil
}

// CreatePull opens a new pull request and returns its number.
func (g *GitHub) CreatePull(ctx context.Context, req CreatePullRequest) (uint64, error) {
	pr, _, err := g.client.PullRequests.Create(ctx, g.owner, g.repo, &github.NewPullRequest{
		Title: github.String(req.Title),
		Head:  github.String(req.Head),
		Base:  github.String(req.Base),
		Body:  github.String(req.Body),
		Draft: github.Bool(req.Draft),
	})
	if err != nil {
		return 0, fmt.Errorf("create pull: %w", err)
	}
	return uint64(pr.GetNumber()), nil
}

// CreateIssueComment posts a new comment on a pull request and
// returns its id.
func (g *GitHub) CreateIssueComment(ctx context.Context, number uint64, body string) (uint64, error) {
	comment, _, err := g.client.Issues.CreateComment(ctx, g.owner, g.repo, int(number), &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return 0, fmt.Errorf("create comment on #%d: %w", number, err)
	}
	return uint64(comment.GetID()), nil
}

// UpdateIssueComment replaces the body of an existing comment.
func (g *GitHub) UpdateIssueComment(ctx context.Context, commentID uint64, body string) error {
	_, _, err := g.client.Issues.EditComment(ctx, g.owner, g.repo, int64(commentID), &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("update comment %d: %w", commentID, err)
	}
	return nil
}
