// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package console provides severity-tagged operator output and interactive
// prompting for the installer. Output is tagged informational, success,
// warning, or error so operators can tell "proceeding despite a problem"
// apart from "stopped". Prompting sits behind the Prompter interface so
// components can be driven by canned answers in tests instead of a live
// terminal.
package console

import (
	"io"
	"os"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

// Prompter collects interactive input. All prompts block until answered.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer.
	Confirm(text string, defaultYes bool) (bool, error)
	// Input asks for a single line of text.
	Input(text string) (string, error)
	// Password asks for a single line of text with masked echo.
	Password(text string) (string, error)
}

// Console combines a Prompter with severity-tagged printers. A nil logger is
// allowed; messages then go to the terminal only.
type Console struct {
	Prompter
	out io.Writer
	log *logrus.Logger
}

// New returns a Console printing to stdout.
func New(p Prompter, log *logrus.Logger) *Console {
	return &Console{Prompter: p, out: os.Stdout, log: log}
}

// NewWithWriter returns a Console printing to w. Tests pass io.Discard.
func NewWithWriter(p Prompter, w io.Writer, log *logrus.Logger) *Console {
	return &Console{Prompter: p, out: w, log: log}
}

// Infof prints an informational message.
func (c *Console) Infof(format string, args ...any) {
	pterm.Info.WithWriter(c.out).Printfln(format, args...)
	if c.log != nil {
		c.log.Infof(format, args...)
	}
}

// Successf prints a success message.
func (c *Console) Successf(format string, args ...any) {
	pterm.Success.WithWriter(c.out).Printfln(format, args...)
	if c.log != nil {
		c.log.Infof(format, args...)
	}
}

// Warnf prints a warning; the run continues.
func (c *Console) Warnf(format string, args ...any) {
	pterm.Warning.WithWriter(c.out).Printfln(format, args...)
	if c.log != nil {
		c.log.Warnf(format, args...)
	}
}

// Errorf prints an error; the caller decides whether to stop.
func (c *Console) Errorf(format string, args ...any) {
	pterm.Error.WithWriter(c.out).Printfln(format, args...)
	if c.log != nil {
		c.log.Errorf(format, args...)
	}
}

// Printf prints untagged text, for document output such as emitted configs.
func (c *Console) Printf(format string, args ...any) {
	pterm.Fprint(c.out, pterm.Sprintf(format, args...))
}

// Spinner shows a spinner with text while a long external operation (clone,
// build) runs, hiding the cursor for the duration. The returned function
// stops the spinner and restores the cursor.
func (c *Console) Spinner(text string) func() {
	onTerminal := c.out == os.Stdout
	if onTerminal {
		cursor.Hide()
	}
	if c.log != nil {
		c.log.Infof("%s", text)
	}
	sp, err := pterm.DefaultSpinner.WithWriter(c.out).WithRemoveWhenDone(true).Start(text)
	if err != nil {
		c.Infof("%s", text)
		return func() {
			if onTerminal {
				cursor.Show()
			}
		}
	}
	return func() {
		_ = sp.Stop()
		if onTerminal {
			cursor.Show()
		}
	}
}
