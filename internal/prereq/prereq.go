// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package prereq verifies that the external tools acquisition depends on are
// present on the execution path, and optionally installs them through the
// platform package manager when the operator consents.
package prereq

import (
	"context"
	"runtime"

	"sqlmcp/cli/internal/console"
	apperrors "sqlmcp/cli/internal/errors"
	"sqlmcp/cli/internal/runner"
)

// Status is the outcome of ensuring one tool.
type Status int

const (
	// Available means the tool was already on the path.
	Available Status = iota
	// Installed means the tool was installed during this run and is now
	// on the path.
	Installed
	// Unavailable means the tool is missing and could not (or was not
	// allowed to) be installed.
	Unavailable
)

// Required lists the tools acquisition needs: the server's language runtime
// and the version-control client that fetches it.
var Required = []string{"node", "git"}

// installArgs maps GOOS → tool → package-manager invocation.
var installArgs = map[string]map[string][]string{
	"darwin": {
		"node": {"brew", "install", "node"},
		"git":  {"brew", "install", "git"},
	},
	"linux": {
		"node": {"sudo", "apt-get", "install", "-y", "nodejs", "npm"},
		"git":  {"sudo", "apt-get", "install", "-y", "git"},
	},
	"windows": {
		"node": {"winget", "install", "--id", "OpenJS.NodeJS", "-e"},
		"git":  {"winget", "install", "--id", "Git.Git", "-e"},
	},
}

// Resolver checks for and installs prerequisite tools.
type Resolver struct {
	Runner  runner.Runner
	Console *console.Console
	// GOOS overrides the platform for tests; empty means runtime.GOOS.
	GOOS string
}

func (r *Resolver) goos() string {
	if r.GOOS != "" {
		return r.GOOS
	}
	return runtime.GOOS
}

// Ensure checks that tool is on the path, offering a package-manager install
// when it is not. The returned Status is Unavailable when the tool remains
// missing after a declined or failed install attempt.
func (r *Resolver) Ensure(ctx context.Context, tool string) (Status, error) {
	if _, err := r.Runner.LookPath(tool); err == nil {
		return Available, nil
	} else if !runner.IsNotFound(err) {
		// The tool is on disk but unusable (e.g. a permission problem);
		// installing over it would not help.
		return Unavailable, apperrors.Wrap(apperrors.MissingPrerequisite, "could not resolve "+tool, err)
	}

	args, ok := installArgs[r.goos()][tool]
	if !ok {
		return Unavailable, apperrors.New(apperrors.MissingPrerequisite, tool+" is not installed and no installer is known for this platform")
	}

	r.Console.Warnf("%s is not installed", tool)
	yes, err := r.Console.Confirm("Attempt to install "+tool+" now?", true)
	if err != nil {
		return Unavailable, apperrors.Wrap(apperrors.MissingPrerequisite, tool+" is not installed", err)
	}
	if !yes {
		return Unavailable, apperrors.New(apperrors.MissingPrerequisite, tool+" is required; install it and re-run")
	}

	if out, err := r.Runner.Run(ctx, "", args[0], args[1:]...); err != nil {
		r.Console.Errorf("install of %s failed: %s", tool, out)
		return Unavailable, apperrors.Wrap(apperrors.MissingPrerequisite, "install of "+tool+" failed", err)
	}

	// Re-check; the package manager may have reported success without
	// putting the tool on PATH for this shell.
	if _, err := r.Runner.LookPath(tool); err != nil {
		return Unavailable, apperrors.Wrap(apperrors.MissingPrerequisite, tool+" still missing after install; open a new shell and re-run", err)
	}
	r.Console.Successf("%s installed", tool)
	return Installed, nil
}

// EnsureAll ensures every tool in tools, stopping at the first one that
// remains unavailable. Acquisition must not start without all of them.
func (r *Resolver) EnsureAll(ctx context.Context, tools []string) error {
	for _, tool := range tools {
		status, err := r.Ensure(ctx, tool)
		if status == Unavailable {
			return err
		}
		if status == Available {
			r.Console.Infof("%s found", tool)
		}
	}
	return nil
}
