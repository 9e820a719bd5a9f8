// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package console

import (
	"github.com/pterm/pterm"

	"sqlmcp/cli/internal/terminal"
)

// TerminalPrompter asks questions on the controlling terminal using pterm's
// interactive printers.
type TerminalPrompter struct{}

func (TerminalPrompter) Confirm(text string, defaultYes bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(defaultYes).Show(text)
}

func (TerminalPrompter) Input(text string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(text)
}

// Password reads masked input and scrubs the prompt line from the scrollback
// afterward, so even the masked form does not linger on screen.
func (TerminalPrompter) Password(text string) (string, error) {
	v, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show(text)
	if err == nil {
		terminal.ClearPreviousLines(len(text) + len(v))
	}
	return v, err
}

// Scripted replays canned answers in order. It backs tests that exercise
// interactive flows without a terminal; when a queue runs dry the zero value
// for that prompt type is returned.
type Scripted struct {
	Confirms  []bool
	Inputs    []string
	Passwords []string
}

func (s *Scripted) Confirm(text string, defaultYes bool) (bool, error) {
	if len(s.Confirms) == 0 {
		return defaultYes, nil
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

func (s *Scripted) Input(text string) (string, error) {
	if len(s.Inputs) == 0 {
		return "", nil
	}
	v := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return v, nil
}

func (s *Scripted) Password(text string) (string, error) {
	if len(s.Passwords) == 0 {
		return "", nil
	}
	v := s.Passwords[0]
	s.Passwords = s.Passwords[1:]
	return v, nil
}
