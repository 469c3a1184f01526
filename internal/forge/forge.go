// Package forge defines the narrow capability surface the submit
// engine consumes from a pull-request platform, and a GitHub-backed
// implementation of it.
package forge

import "context"

// Pull is the subset of pull-request state the core reasons about.
type Pull struct {
	Number  uint64
	Base    string
	HeadSHA string

	// Closed reports whether the pull request has been merged or
	// closed without merging. The core treats both the same way: a
	// closed branch is offered up for local deletion.
	Closed bool
}

// CreatePullRequest describes a pull request to create.
type CreatePullRequest struct {
	Title string
	Head  string
	Base  string
	Body  string
	Draft bool
}

// Repository is the remote adapter contract (spec component C7).
// All operations can fail with a network or authorization error; the
// core reports these and never retries automatically.
type Repository interface {
	// GetPull fetches a pull request's current base and head state.
	GetPull(ctx context.Context, number uint64) (*Pull, error)

	// UpdatePullBase re-parents an existing pull request onto a new
	// base branch.
	UpdatePullBase(ctx context.Context, number uint64, base string) error

	// CreatePull opens a new pull request and returns its number.
	CreatePull(ctx context.Context, req CreatePullRequest) (uint64, error)

	// CreateIssueComment posts a new comment on a pull request (pull
	// requests and issues share one numbering space on GitHub, so the PR
	// number addresses its issue-comment thread) and returns its id.
	CreateIssueComment(ctx context.Context, number uint64, body string) (uint64, error)

	// UpdateIssueComment replaces the body of an existing comment.
	UpdateIssueComment(ctx context.Context, commentID uint64, body string) error
}
