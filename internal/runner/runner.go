// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package runner abstracts external tool invocation behind a uniform
// success/failure/output result. Every subprocess the installer spawns
// (git, npm, OS package managers) goes through a Runner, so tests can
// inject deterministic failures without touching the network or the
// file system.
package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Runner executes external commands and resolves tool paths.
type Runner interface {
	// Run executes name with args in dir (empty dir means the current
	// directory) and returns the combined output. A non-nil error means
	// the command could not start or exited non-zero.
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
	// LookPath reports the full path of name on the execution path.
	LookPath(name string) (string, error)
}

// Exec is the production Runner backed by os/exec. Log may be nil.
type Exec struct {
	Log *logrus.Logger
}

func (e *Exec) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if e.Log != nil {
		entry := e.Log.WithFields(logrus.Fields{"command": name, "args": args, "dir": dir})
		if err != nil {
			entry.WithError(err).Warn("command failed")
		} else {
			entry.Debug("command succeeded")
		}
	}
	return string(out), err
}

func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// IsNotFound checks if the error indicates the command was not found, as
// opposed to some other lookup failure such as a permission problem.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
