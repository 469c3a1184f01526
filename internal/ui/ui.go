// Package ui defines the narrow interactive-prompter contract the
// engines consume, and a survey-backed implementation of it.
package ui

import "fmt"

// ErrCanceled is returned when the user cancels a prompt with Ctrl-C
// (the survey collaborator's interrupt error).
var ErrCanceled = fmt.Errorf("canceled")

// Prompter is the external collaborator for interactive input. The
// engines depend only on this interface, never on a concrete prompt
// library.
type Prompter interface {
	// Text asks a free-form question, pre-filled with def, and returns
	// the trimmed answer.
	Text(message, def string) (string, error)

	// Confirm asks a yes/no question, pre-selecting def.
	Confirm(message string, def bool) (bool, error)

	// Select asks the user to choose one of options, returning its
	// index.
	Select(message string, options []string) (int, error)

	// Editor opens the user's configured editor pre-populated with
	// starting content, and returns the edited text.
	Editor(message, starting string) (string, error)
}
