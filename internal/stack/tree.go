// Package stack implements the persisted stack model: a multi-trunk, n-ary
// tree of tracked branches with bidirectional parent/child edges, cached
// parent commit identifiers, and remote metadata.
//
// StackTree and its mutation operations are the only place the tree's
// invariants (closure, uniqueness, acyclicity, cache validity) are
// enforced. Every exported mutation either preserves them or returns an
// error and leaves the tree unchanged, with two exceptions: AddTrunk does
// not check whether the new trunk's name is already tracked as a branch
// under another trunk, and Insert does not check that parentOID is
// non-empty.
package stack

import (
	"fmt"
	"sort"
)

// RemoteMetadata is the remote pull-request state associated with a
// tracked branch.
type RemoteMetadata struct {
	// PRNumber is assigned by the remote when the pull request is created.
	PRNumber uint64

	// CommentID identifies the stack-overview comment on the pull
	// request, once one has been posted. Zero means no comment yet.
	CommentID uint64
}

// HasComment reports whether a stack-overview comment has been posted for
// this branch's pull request.
func (m *RemoteMetadata) HasComment() bool {
	return m != nil && m.CommentID != 0
}

// TrackedBranch is a single branch tracked within a trunk's tree.
type TrackedBranch struct {
	// Name is the branch name. It is always equal to its key in the
	// owning TrunkBranches.Branches map.
	Name string

	// Parent is the name of the parent branch, or empty iff this entry
	// is the trunk itself.
	Parent string

	// ParentOIDCache is the parent branch's commit id as of the last
	// successful restack of this branch. Empty iff Parent is empty.
	ParentOIDCache string

	// Children is the set of branch names whose Parent is this branch.
	Children map[string]struct{}

	// Remote is the remote pull-request metadata for this branch, if it
	// has been submitted.
	Remote *RemoteMetadata
}

func newTrackedBranch(name, parent, parentOID string) *TrackedBranch {
	return &TrackedBranch{
		Name:           name,
		Parent:         parent,
		ParentOIDCache: parentOID,
		Children:       make(map[string]struct{}),
	}
}

// IsTrunk reports whether this entry is a trunk root.
func (b *TrackedBranch) IsTrunk() bool {
	return b.Parent == ""
}

// SortedChildren returns the branch's children in a stable, deterministic
// order. The tree does not otherwise order siblings (spec Open Question
// (a)); sorting by name just makes tests and rendered output reproducible.
func (b *TrackedBranch) SortedChildren() []string {
	names := make([]string, 0, len(b.Children))
	for name := range b.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TrunkBranches holds all branches tracked under a single trunk, including
// the trunk itself as a self-parented entry.
type TrunkBranches struct {
	// Name is the trunk branch name. Equal to its key in
	// StackTree.Trunks.
	Name string

	// Branches maps branch name to tracked branch, for every branch in
	// this trunk's tree, including the trunk itself.
	Branches map[string]*TrackedBranch
}

func newTrunkBranches(name string) *TrunkBranches {
	root := newTrackedBranch(name, "", "")
	return &TrunkBranches{
		Name: name,
		Branches: map[string]*TrackedBranch{
			name: root,
		},
	}
}

// StackTree is the in-memory and on-disk model of every trunk tracked in a
// repository, and the tree of branches stacked on each of them.
type StackTree struct {
	// ActiveTrunk is the name of the currently selected trunk. Always a
	// key of Trunks once the tree has been constructed.
	ActiveTrunk string

	// Trunks maps trunk name to its branch tree.
	Trunks map[string]*TrunkBranches

	// TrunkName and Branches carry the legacy single-trunk format when a
	// tree is loaded from an old store file. Migrate moves them into
	// Trunks and clears them; they are never populated by New or by any
	// mutation, and are never written back out.
	TrunkName string
	Branches  map[string]*TrackedBranch
}

// New builds a tree whose sole trunk is the given branch, which becomes
// the active trunk.
func New(trunk string) *StackTree {
	t := &StackTree{
		Trunks: make(map[string]*TrunkBranches),
	}
	t.AddTrunk(trunk)
	t.ActiveTrunk = trunk
	return t
}

// Migrate moves the legacy single-trunk fields into the multi-trunk form,
// if present. It is idempotent: calling it on an already-migrated tree, or
// one that never carried legacy fields, does nothing.
func (t *StackTree) Migrate() {
	if t.TrunkName == "" || t.Branches == nil {
		return
	}

	if t.Trunks == nil {
		t.Trunks = make(map[string]*TrunkBranches)
	}
	t.Trunks[t.TrunkName] = &TrunkBranches{
		Name:     t.TrunkName,
		Branches: t.Branches,
	}
	t.ActiveTrunk = t.TrunkName
	t.TrunkName = ""
	t.Branches = nil
}

// AddTrunk inserts a new trunk with a self-parented root entry. It is a
// no-op if the trunk is already present, and never changes ActiveTrunk.
func (t *StackTree) AddTrunk(trunk string) {
	if _, ok := t.Trunks[trunk]; ok {
		return
	}
	t.Trunks[trunk] = newTrunkBranches(trunk)
}

// ListTrunks returns the names of all tracked trunks, in no particular
// order.
func (t *StackTree) ListTrunks() []string {
	names := make([]string, 0, len(t.Trunks))
	for name := range t.Trunks {
		names = append(names, name)
	}
	return names
}

// SwitchTrunk sets the active trunk to trunk. Returns a
// *BranchNotTrackedError if the trunk is not tracked.
func (t *StackTree) SwitchTrunk(trunk string) error {
	if _, ok := t.Trunks[trunk]; !ok {
		return &BranchNotTrackedError{Name: trunk}
	}
	t.ActiveTrunk = trunk
	return nil
}

// RemoveTrunk removes a trunk and every branch tracked under it. Fails if
// the trunk is the active trunk, or is not tracked.
func (t *StackTree) RemoveTrunk(trunk string) error {
	if trunk == t.ActiveTrunk {
		return fmt.Errorf("cannot remove the active trunk %q", trunk)
	}
	if _, ok := t.Trunks[trunk]; !ok {
		return &BranchNotTrackedError{Name: trunk}
	}
	delete(t.Trunks, trunk)
	return nil
}

func (t *StackTree) active() *TrunkBranches {
	return t.Trunks[t.ActiveTrunk]
}

// Get looks up a branch by name within the active trunk. The returned
// pointer aliases the tree's own storage: mutating its fields mutates the
// tree directly, which is why stack does not need a separate "mutable
// lookup" operation the way a borrow-checked language would.
func (t *StackTree) Get(name string) *TrackedBranch {
	active := t.active()
	if active == nil {
		return nil
	}
	return active.Branches[name]
}

// Insert creates a child of parent named name, caching parentOID as the
// parent's commit id. Fails with *BranchNotTrackedError if parent does not
// exist in the active trunk, or *BranchAlreadyTrackedError if name is
// already tracked under any trunk.
func (t *StackTree) Insert(parent, parentOID, name string) error {
	active := t.active()
	if active == nil {
		return &BranchNotTrackedError{Name: t.ActiveTrunk}
	}

	parentBranch, ok := active.Branches[parent]
	if !ok {
		return &BranchNotTrackedError{Name: parent}
	}
	for _, trunk := range t.Trunks {
		if _, ok := trunk.Branches[name]; ok {
			return &BranchAlreadyTrackedError{Name: name}
		}
	}

	parentBranch.Children[name] = struct{}{}
	active.Branches[name] = newTrackedBranch(name, parent, parentOID)
	return nil
}

// Delete removes name from the active trunk, re-parenting its children
// onto its own parent. Fails if name is absent, or if name is the trunk
// itself (use RemoveTrunk for that).
func (t *StackTree) Delete(name string) error {
	active := t.active()
	if active == nil {
		return &BranchNotTrackedError{Name: name}
	}

	branch, ok := active.Branches[name]
	if !ok {
		return &BranchNotTrackedError{Name: name}
	}
	if branch.IsTrunk() {
		return ErrCannotDeleteTrunkBranch
	}

	parent := active.Branches[branch.Parent]
	delete(parent.Children, name)

	for child := range branch.Children {
		childBranch := active.Branches[child]
		childBranch.Parent = branch.Parent
		childBranch.ParentOIDCache = branch.ParentOIDCache
		parent.Children[child] = struct{}{}
	}

	delete(active.Branches, name)
	return nil
}

// Branches returns every branch in the active trunk in an order such that
// every parent precedes its children: a pre-order depth-first traversal
// starting at the trunk. Sibling order is otherwise unspecified, but is
// sorted by name here for determinism.
func (t *StackTree) Branches() []string {
	active := t.active()
	if active == nil {
		return nil
	}

	var names []string
	var visit func(name string)
	visit = func(name string) {
		names = append(names, name)
		branch := active.Branches[name]
		for _, child := range branch.SortedChildren() {
			visit(child)
		}
	}
	visit(active.Name)
	return names
}
