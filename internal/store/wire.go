package store

import "go.stacked.dev/st/internal/stack"

// wireTree is the on-disk shape of stack.StackTree, matching the
// kebab-cased TOML schema. Field tags are the only place the wire
// vocabulary is spelled out.
type wireTree struct {
	ActiveTrunk string                 `toml:"active-trunk"`
	Trunks      map[string]*wireTrunk  `toml:"trunks"`

	// Legacy single-trunk form, accepted on read only.
	TrunkName string                   `toml:"trunk-name,omitempty"`
	Branches  map[string]*wireBranch   `toml:"branches,omitempty"`
}

type wireTrunk struct {
	Name     string                 `toml:"name"`
	Branches map[string]*wireBranch `toml:"branches"`
}

type wireBranch struct {
	Name           string        `toml:"name"`
	Parent         string        `toml:"parent,omitempty"`
	ParentOIDCache string        `toml:"parent-oid-cache,omitempty"`
	Children       []string      `toml:"children"`
	Remote         *wireRemote   `toml:"remote,omitempty"`
}

type wireRemote struct {
	PRNumber  uint64 `toml:"pr-number"`
	CommentID uint64 `toml:"comment-id,omitempty"`
}

// toWire converts a loaded stack.StackTree into its serializable form.
// Legacy fields are never emitted: the tree is migrated before this is
// called.
func toWire(t *stack.StackTree) *wireTree {
	w := &wireTree{
		ActiveTrunk: t.ActiveTrunk,
		Trunks:      make(map[string]*wireTrunk, len(t.Trunks)),
	}

	for trunkName, trunk := range t.Trunks {
		wt := &wireTrunk{
			Name:     trunk.Name,
			Branches: make(map[string]*wireBranch, len(trunk.Branches)),
		}
		for name, b := range trunk.Branches {
			wb := &wireBranch{
				Name:           b.Name,
				Parent:         b.Parent,
				ParentOIDCache: b.ParentOIDCache,
				Children:       b.SortedChildren(),
			}
			if b.Remote != nil {
				wb.Remote = &wireRemote{
					PRNumber:  b.Remote.PRNumber,
					CommentID: b.Remote.CommentID,
				}
			}
			wt.Branches[name] = wb
		}
		w.Trunks[trunkName] = wt
	}

	return w
}

// fromWire reconstructs a stack.StackTree from its wire form, preserving
// any legacy fields so the caller can run migration. Children sets are
// rebuilt from the parent pointers rather than trusted from the wire
// form, since closure (invariant 1) must hold regardless of what was
// written by a prior or foreign process.
func fromWire(w *wireTree) *stack.StackTree {
	t := &stack.StackTree{
		ActiveTrunk: w.ActiveTrunk,
		Trunks:      make(map[string]*stack.TrunkBranches, len(w.Trunks)),
		TrunkName:   w.TrunkName,
	}

	if w.Branches != nil {
		t.Branches = branchesFromWire(w.Branches)
	}

	for trunkName, wt := range w.Trunks {
		t.Trunks[trunkName] = &stack.TrunkBranches{
			Name:     wt.Name,
			Branches: branchesFromWire(wt.Branches),
		}
	}

	return t
}

func branchesFromWire(in map[string]*wireBranch) map[string]*stack.TrackedBranch {
	out := make(map[string]*stack.TrackedBranch, len(in))
	for name, wb := range in {
		tb := &stack.TrackedBranch{
			Name:           wb.Name,
			Parent:         wb.Parent,
			ParentOIDCache: wb.ParentOIDCache,
			Children:       make(map[string]struct{}, len(wb.Children)),
		}
		if wb.Remote != nil {
			tb.Remote = &stack.RemoteMetadata{
				PRNumber:  wb.Remote.PRNumber,
				CommentID: wb.Remote.CommentID,
			}
		}
		out[name] = tb
	}

	// Rebuild children from parent pointers; do not trust the wire
	// form's children arrays.
	for name, tb := range out {
		if tb.Parent == "" {
			continue
		}
		if parent, ok := out[tb.Parent]; ok {
			parent.Children[name] = struct{}{}
		}
	}

	return out
}
