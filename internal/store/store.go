// Package store reads and writes the persisted stack tree as a
// human-editable TOML document, and resolves the conventional location
// of that document inside a repository's private metadata directory.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"go.stacked.dev/st/internal/stack"
)

// FileName is the name of the stack store inside a repository's private
// metadata directory.
const FileName = ".st_store.toml"

// Store loads and saves a stack.StackTree at a fixed path. A Store does
// not hold the tree in memory between calls; each Load re-reads the
// file and each Save is a whole-file replacement.
type Store struct {
	path string
}

// Open returns a Store rooted at dir, which is ordinarily a
// repository's git directory (".git", or the directory it points to
// for a worktree).
func Open(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Load reads the tree, running the legacy-format migration before
// returning it. If no store file exists yet, Load returns a tree with
// trunk as its sole trunk rather than an error, so that first-time use
// behaves like initialization.
func (s *Store) Load(trunk string) (*stack.StackTree, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return stack.New(trunk), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stack store: %w", err)
	}

	var w wireTree
	if err := toml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse stack store %s: %w", s.path, err)
	}

	tree := fromWire(&w)
	tree.Migrate()
	if len(tree.Trunks) == 0 {
		return stack.New(trunk), nil
	}
	if tree.ActiveTrunk == "" {
		return nil, fmt.Errorf("parse stack store %s: no active trunk recorded", s.path)
	}
	return tree, nil
}

// Save writes the tree to the store file, overwriting it in full. The
// legacy trunk-name/branches fields are never written, since toWire
// only ever populates the multi-trunk form.
func (s *Store) Save(tree *stack.StackTree) error {
	data, err := toml.Marshal(toWire(tree))
	if err != nil {
		return fmt.Errorf("encode stack store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create stack store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write stack store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write stack store: %w", err)
	}
	return nil
}

// Acquire loads the tree, passes it to fn, and saves it back only if fn
// returns nil. If fn returns an error, the store file is left
// untouched, matching the scoped-acquisition-with-save-on-success
// lifecycle every mutating command follows.
func (s *Store) Acquire(trunk string, fn func(*stack.StackTree) error) error {
	tree, err := s.Load(trunk)
	if err != nil {
		return err
	}
	if err := fn(tree); err != nil {
		return err
	}
	return s.Save(tree)
}
