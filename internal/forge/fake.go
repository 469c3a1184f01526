package forge

import (
	"context"
	"fmt"
)

// Fake is an in-memory Repository for tests.
type Fake struct {
	Pulls    map[uint64]*Pull
	Comments map[uint64]string

	nextPull    uint64
	nextComment uint64
}

var _ Repository = (*Fake)(nil)

// NewFake returns an empty Fake repository.
func NewFake() *Fake {
	return &Fake{
		Pulls:    make(map[uint64]*Pull),
		Comments: make(map[uint64]string),
	}
}

func (f *Fake) GetPull(_ context.Context, number uint64) (*Pull, error) {
	pr, ok := f.Pulls[number]
	if !ok {
		return nil, fmt.Errorf("pull #%d not found", number)
	}
	copy := *pr
	return &copy, nil
}

func (f *Fake) UpdatePullBase(_ context.Context, number uint64, base string) error {
	pr, ok := f.Pulls[number]
	if !ok {
		return fmt.Errorf("pull #%d not found", number)
	}
	pr.Base = base
	return nil
}

func (f *Fake) CreatePull(_ context.Context, req CreatePullRequest) (uint64, error) {
	f.nextPull++
	f.Pulls[f.nextPull] = &Pull{Number: f.nextPull, Base: req.Base, HeadSHA: ""}
	return f.nextPull, nil
}

func (f *Fake) CreateIssueComment(_ context.Context, _ uint64, body string) (uint64, error) {
	f.nextComment++
	f.Comments[f.nextComment] = body
	return f.nextComment, nil
}

func (f *Fake) UpdateIssueComment(_ context.Context, commentID uint64, body string) error {
	if _, ok := f.Comments[commentID]; !ok {
		return fmt.Errorf("comment %d not found", commentID)
	}
	f.Comments[commentID] = body
	return nil
}

// SetHead sets the recorded head SHA for a pull, simulating a push
// that has already landed on the remote.
func (f *Fake) SetHead(number uint64, sha string) {
	if pr, ok := f.Pulls[number]; ok {
		pr.HeadSHA = sha
	}
}

// SetClosed marks a pull as merged or closed, simulating remote state
// the engine discovers when pruning.
func (f *Fake) SetClosed(number uint64, closed bool) {
	if pr, ok := f.Pulls[number]; ok {
		pr.Closed = closed
	}
}
