// Package config reads the user's global configuration file, the one
// external input the core treats as a trusted, pre-validated record
// rather than something it negotiates credentials through.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the global configuration file, resolved
// relative to the user's home directory.
const FileName = ".st.toml"

// DefaultEditor is used when no editor is configured.
const DefaultEditor = "nano"

// PRTemplate is a named, reusable pull-request body template.
type PRTemplate struct {
	Name    string `toml:"name"`
	Content string `toml:"content"`
}

// Config is the global configuration record.
type Config struct {
	// GitHubToken authenticates requests to the remote adapter. Required
	// to be non-empty.
	GitHubToken string `toml:"github-token"`

	// Editor is the program invoked to edit PR bodies and other
	// free-form text. Defaults to DefaultEditor when absent.
	Editor string `toml:"editor,omitempty"`

	// GeminiAPIKey enables the optional AI-assisted PR description
	// generator when present.
	GeminiAPIKey string `toml:"gemini-api-key,omitempty"`

	// PRTemplates are named bodies offered to the user when composing a
	// pull request.
	PRTemplates []PRTemplate `toml:"pr-templates,omitempty"`
}

// ErrMissingGitHubToken is returned when the configuration file has no
// (or an empty) github-token entry.
var ErrMissingGitHubToken = fmt.Errorf("github-token is required")

// Path returns the default location of the global configuration file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.GitHubToken == "" {
		return nil, ErrMissingGitHubToken
	}
	if cfg.Editor == "" {
		cfg.Editor = DefaultEditor
	}

	return &cfg, nil
}

// Template looks up a named PR template, reporting whether it exists.
func (c *Config) Template(name string) (PRTemplate, bool) {
	for _, t := range c.PRTemplates {
		if t.Name == name {
			return t, true
		}
	}
	return PRTemplate{}, false
}

// HasAI reports whether the AI-assisted PR description generator is
// available.
func (c *Config) HasAI() bool {
	return c.GeminiAPIKey != ""
}
