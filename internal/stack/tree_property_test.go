package stack

import (
	"testing"

	"pgregory.net/rapid"
)

// checkInvariants verifies invariants 1-6 from spec.md §3 hold for the
// active trunk of the tree.
func checkInvariants(t *rapid.T, tr *StackTree) {
	t.Helper()

	if _, ok := tr.Trunks[tr.ActiveTrunk]; !ok {
		t.Fatalf("invariant 6 violated: active trunk %q is not tracked", tr.ActiveTrunk)
	}

	active := tr.Trunks[tr.ActiveTrunk]
	seen := make(map[string]bool)

	for name, b := range active.Branches {
		if b.Name != name {
			t.Fatalf("branch keyed at %q has Name %q", name, b.Name)
		}

		isTrunk := b.Parent == ""
		if isTrunk != (name == active.Name) {
			t.Fatalf("invariant 4 violated: %q parent=%q trunk=%q", name, b.Parent, active.Name)
		}

		// invariant 5: cache validity.
		if isTrunk && b.ParentOIDCache != "" {
			t.Fatalf("invariant 5 violated: trunk %q has a cached parent id", name)
		}
		if !isTrunk && b.ParentOIDCache == "" {
			// Newly inserted branches always carry a cache in these
			// tests, so an empty cache here is always a bug.
			t.Fatalf("invariant 5 violated: %q has no cached parent id", name)
		}

		if !isTrunk {
			parent, ok := active.Branches[b.Parent]
			if !ok {
				t.Fatalf("invariant 1 violated: %q has missing parent %q", name, b.Parent)
			}
			if _, ok := parent.Children[name]; !ok {
				t.Fatalf("invariant 1 violated: %q not in parent %q's children", name, b.Parent)
			}
		}

		seen[name] = false
	}

	// invariant 3: acyclicity - following parent from any branch
	// terminates at the trunk in a finite number of steps.
	for name := range active.Branches {
		visited := make(map[string]bool)
		cur := name
		for {
			if visited[cur] {
				t.Fatalf("invariant 3 violated: cycle detected starting at %q", name)
			}
			visited[cur] = true
			b := active.Branches[cur]
			if b.Parent == "" {
				break
			}
			cur = b.Parent
		}
	}

	// invariant 2: uniqueness across trunks.
	for otherTrunkName, otherTrunk := range tr.Trunks {
		if otherTrunkName == tr.ActiveTrunk {
			continue
		}
		for name := range active.Branches {
			if name == otherTrunkName {
				t.Fatalf("invariant 2 violated: %q is both a branch and a trunk", name)
			}
			if _, ok := otherTrunk.Branches[name]; ok {
				t.Fatalf("invariant 2 violated: %q appears in two trunks", name)
			}
		}
	}
}

// TestStackTreeInvariants drives random sequences of mutations against a
// StackTree and asserts invariants 1-6 hold after every step.
func TestStackTreeInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := New("main")
		checkInvariants(t, tr)

		tracked := []string{"main"}
		branchNames := rapid.StringMatching(`[a-z][a-z0-9]{0,6}`)
		oidGen := rapid.StringOfN(rapid.RuneFrom([]rune("0123456789abcdef")), 7, 7, 7)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 1).Draw(t, "op") {
			case 0: // insert
				name := branchNames.Draw(t, "name")
				found := false
				for _, n := range tracked {
					if n == name {
						found = true
						break
					}
				}
				if found {
					continue
				}
				parent := rapid.SampledFrom(tracked).Draw(t, "parent")
				oid := oidGen.Draw(t, "oid")
				if err := tr.Insert(parent, oid, name); err != nil {
					t.Fatalf("insert should not fail for a fresh name: %v", err)
				}
				tracked = append(tracked, name)

			case 1: // delete (never the trunk)
				if len(tracked) <= 1 {
					continue
				}
				idx := rapid.IntRange(1, len(tracked)-1).Draw(t, "victim")
				victim := tracked[idx]
				if err := tr.Delete(victim); err != nil {
					t.Fatalf("delete of tracked branch failed: %v", err)
				}
				tracked = append(tracked[:idx], tracked[idx+1:]...)
			}

			checkInvariants(t, tr)
		}

		// Branches() always returns the trunk first, with no
		// duplicates, enumerating exactly the tracked set.
		order := tr.Branches()
		if len(order) == 0 || order[0] != "main" {
			t.Fatalf("Branches() must start with the trunk, got %v", order)
		}
		if len(order) != len(tracked) {
			t.Fatalf("Branches() length %d != tracked length %d", len(order), len(tracked))
		}
		seen := make(map[string]bool, len(order))
		for _, name := range order {
			if seen[name] {
				t.Fatalf("Branches() returned %q more than once", name)
			}
			seen[name] = true
		}
		for _, name := range tracked {
			if !seen[name] {
				t.Fatalf("Branches() is missing tracked branch %q", name)
			}
		}
	})
}
