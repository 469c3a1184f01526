package ui

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Survey implements Prompter on top of survey/v2.
type Survey struct {
	// Editor is the program survey's Editor question invokes. Empty
	// means survey falls back to $EDITOR or its own built-in default.
	Editor string
}

var _ Prompter = (*Survey)(nil)

func wrapInterrupt(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCanceled
	}
	return err
}

// Text asks a free-form question, pre-filled with def, and returns the
// trimmed answer.
func (s *Survey) Text(message, def string) (string, error) {
	var answer string
	prompt := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", wrapInterrupt(err)
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question, pre-selecting def.
func (s *Survey) Confirm(message string, def bool) (bool, error) {
	var answer bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, wrapInterrupt(err)
	}
	return answer, nil
}

// Select asks the user to choose one of options, returning its index.
func (s *Survey) Select(message string, options []string) (int, error) {
	var answer string
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return 0, wrapInterrupt(err)
	}
	for i, opt := range options {
		if opt == answer {
			return i, nil
		}
	}
	return 0, nil
}

// Editor opens the configured editor pre-populated with starting
// content.
func (s *Survey) Editor(message, starting string) (string, error) {
	var answer string
	prompt := &survey.Editor{
		Message:       message,
		Default:       starting,
		HideDefault:   true,
		AppendDefault: true,
		Editor:        s.Editor,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", wrapInterrupt(err)
	}
	return answer, nil
}
