// Package ai defines the optional text-generation collaborator the
// submit engine may use to draft a pull request body, and a
// Gemini-backed implementation of it.
package ai

import "context"

// Generator produces free-form text from a prompt. The submit engine
// never assumes one is available: it probes for it and falls back to
// a plain editor prompt when absent or when generation fails.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
