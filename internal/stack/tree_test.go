package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tr := New("main")
	assert.Equal(t, "main", tr.ActiveTrunk)
	assert.ElementsMatch(t, []string{"main"}, tr.ListTrunks())

	root := tr.Get("main")
	require.NotNil(t, root)
	assert.True(t, root.IsTrunk())
	assert.Empty(t, root.ParentOIDCache)
}

func TestTrunkIsolation(t *testing.T) {
	tr := New("main")
	tr.AddTrunk("dev")
	require.NoError(t, tr.SwitchTrunk("dev"))
	require.NoError(t, tr.Insert("dev", "x", "d1"))

	require.NoError(t, tr.SwitchTrunk("main"))
	assert.Nil(t, tr.Get("d1"))
	assert.NotNil(t, tr.Get("main"))
}

func TestAddTrunkIdempotent(t *testing.T) {
	tr := New("main")
	require.NoError(t, tr.Insert("main", "a", "f1"))
	tr.AddTrunk("main")
	assert.Equal(t, "main", tr.ActiveTrunk)
	assert.NotNil(t, tr.Get("f1"))
}

func TestSwitchTrunkNotTracked(t *testing.T) {
	tr := New("main")
	err := tr.SwitchTrunk("dev")
	var notTracked *BranchNotTrackedError
	assert.ErrorAs(t, err, &notTracked)
	assert.Equal(t, "dev", notTracked.Name)
}

func TestRemoveTrunk(t *testing.T) {
	tr := New("main")
	tr.AddTrunk("dev")

	require.NoError(t, tr.RemoveTrunk("dev"))
	assert.ElementsMatch(t, []string{"main"}, tr.ListTrunks())

	err := tr.RemoveTrunk("main")
	assert.Error(t, err, "cannot remove the active trunk")

	err = tr.RemoveTrunk("ghost")
	assert.Error(t, err, "cannot remove an untracked trunk")
}

func TestInsertAndDelete(t *testing.T) {
	tr := New("main")
	require.NoError(t, tr.Insert("main", "a", "f1"))

	f1 := tr.Get("f1")
	require.NotNil(t, f1)
	assert.Equal(t, "main", f1.Parent)
	assert.Equal(t, "a", f1.ParentOIDCache)

	main := tr.Get("main")
	_, ok := main.Children["f1"]
	assert.True(t, ok)

	require.NoError(t, tr.Delete("f1"))
	assert.Nil(t, tr.Get("f1"))
	_, ok = main.Children["f1"]
	assert.False(t, ok)
}

func TestInsertDuplicate(t *testing.T) {
	tr := New("main")
	require.NoError(t, tr.Insert("main", "a", "f1"))
	err := tr.Insert("main", "b", "f1")
	var already *BranchAlreadyTrackedError
	assert.ErrorAs(t, err, &already)
}

func TestInsertMissingParent(t *testing.T) {
	tr := New("main")
	err := tr.Insert("missing", "a", "f1")
	var notTracked *BranchNotTrackedError
	assert.ErrorAs(t, err, &notTracked)
}

// Scenario 2 from spec.md §8: re-parent on delete.
func TestReparentOnDelete(t *testing.T) {
	tr := New("main")
	require.NoError(t, tr.Insert("main", "a", "f1"))
	require.NoError(t, tr.Insert("f1", "b", "f2"))

	require.NoError(t, tr.Delete("f1"))

	f2 := tr.Get("f2")
	require.NotNil(t, f2)
	assert.Equal(t, "main", f2.Parent)

	main := tr.Get("main")
	_, ok := main.Children["f2"]
	assert.True(t, ok)
}

func TestDeleteTrunkForbidden(t *testing.T) {
	tr := New("main")
	err := tr.Delete("main")
	assert.ErrorIs(t, err, ErrCannotDeleteTrunkBranch)
}

func TestDeleteAbsent(t *testing.T) {
	tr := New("main")
	err := tr.Delete("ghost")
	var notTracked *BranchNotTrackedError
	assert.ErrorAs(t, err, &notTracked)
}

func TestBranchesParentBeforeChild(t *testing.T) {
	tr := New("main")
	require.NoError(t, tr.Insert("main", "a", "f1"))
	require.NoError(t, tr.Insert("f1", "b", "f2"))
	require.NoError(t, tr.Insert("main", "c", "f3"))

	order := tr.Branches()
	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}

	assert.Equal(t, 0, index["main"])
	assert.Less(t, index["f1"], index["f2"])
	assert.Less(t, index["main"], index["f3"])
	assert.ElementsMatch(t, []string{"main", "f1", "f2", "f3"}, order)
}

func TestMigrateFixedPoint(t *testing.T) {
	legacy := &StackTree{
		TrunkName: "master",
		Branches: map[string]*TrackedBranch{
			"master": newTrackedBranch("master", "", ""),
			"f1":     newTrackedBranch("f1", "master", "deadbeef"),
		},
	}

	legacy.Migrate()
	require.Empty(t, legacy.TrunkName)
	require.Nil(t, legacy.Branches)
	assert.Equal(t, "master", legacy.ActiveTrunk)
	assert.Contains(t, legacy.Trunks, "master")
	assert.Contains(t, legacy.Trunks["master"].Branches, "f1")

	// Migration must be idempotent: a second call is a no-op.
	before := legacy.Trunks["master"]
	legacy.Migrate()
	assert.Same(t, before, legacy.Trunks["master"])
}

func TestInsertThenDeleteRestoresTree(t *testing.T) {
	tr := New("main")
	before := tr.Branches()

	require.NoError(t, tr.Insert("main", "a", "leaf"))
	require.NoError(t, tr.Delete("leaf"))

	after := tr.Branches()
	assert.Equal(t, before, after)
}
