// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package orchestrator sequences one installation run: prerequisites,
// directory provisioning, source acquisition, the optional authentication
// patch, and configuration emission. It decides what is fatal (anything
// before and including the initial build) and what is recoverable
// (everything the patcher does).
package orchestrator

import (
	"context"
	"errors"
	"time"

	"sqlmcp/cli/internal/acquire"
	"sqlmcp/cli/internal/clientcfg"
	"sqlmcp/cli/internal/console"
	"sqlmcp/cli/internal/download"
	"sqlmcp/cli/internal/logging"
	"sqlmcp/cli/internal/patch"
	"sqlmcp/cli/internal/prereq"
	"sqlmcp/cli/internal/provision"
	"sqlmcp/cli/internal/runner"
	"sqlmcp/cli/internal/session"
	"sqlmcp/cli/internal/verify"
)

// Orchestrator carries one session through the linear install sequence.
// Every external collaborator sits behind an injectable seam.
type Orchestrator struct {
	Session *session.Session
	Console *console.Console
	Runner  runner.Runner
	Fetcher download.Fetcher

	// SkipPrereqCheck bypasses tool resolution entirely.
	SkipPrereqCheck bool
	// Verify pings the database with the session credentials before
	// emitting configs; failure is a warning, not a stop.
	Verify bool

	// ClaudePath overrides the per-OS Claude Desktop config path (tests).
	ClaudePath string
	// Ping overrides the connection check (tests); nil means verify.Ping.
	Ping func(ctx context.Context, s *session.Session) error
	// Now is the clock for backup timestamps; nil means time.Now.
	Now func() time.Time
}

// Run executes the sequence. A nil return covers both full success and the
// soft exit where the operator keeps an existing directory; fatal failures
// come back as errors for the CLI layer to turn into a non-zero exit.
func (o *Orchestrator) Run(ctx context.Context) error {
	s := o.Session
	o.Console.Infof("Installing MSSQL MCP server for %s/%s (auth: %s)", s.Server, s.Database, s.Mode)

	if o.SkipPrereqCheck {
		o.Console.Warnf("Skipping prerequisite check")
	} else {
		resolver := &prereq.Resolver{Runner: o.Runner, Console: o.Console}
		if err := resolver.EnsureAll(ctx, prereq.Required); err != nil {
			return err
		}
	}

	root, err := provision.Provision(s.Path, o.Console)
	if err != nil {
		if errors.Is(err, provision.ErrDeclined) {
			o.Console.Infof("Keeping the existing installation; nothing was changed.")
			return nil
		}
		return err
	}

	acquirer := &acquire.Acquirer{Runner: o.Runner, Console: o.Console}
	art, err := acquirer.Acquire(ctx, root)
	if err != nil {
		return err
	}

	if s.Mode == session.SQLAuth {
		patcher := &patch.Patcher{Runner: o.Runner, Fetcher: o.Fetcher, Console: o.Console, Now: o.Now}
		outcome, _ := patcher.Apply(ctx, art)
		o.Console.Infof("Authentication patch: %s", outcome)
	}

	if o.Verify {
		o.verifyConnection(ctx)
	}

	if err := o.emit(art); err != nil {
		return err
	}

	o.Console.Successf("Installation complete. Server entry point: %s", art.EntryPoint)
	return nil
}

func (o *Orchestrator) verifyConnection(ctx context.Context) {
	ping := o.Ping
	if ping == nil {
		ping = verify.Ping
	}
	if err := ping(ctx, o.Session); err != nil {
		if errors.Is(err, verify.ErrAzureAD) {
			o.Console.Infof("Skipping connection check: %v", err)
			return
		}
		o.Console.Warnf("%s", logging.PresentError("Connection check failed; the emitted configuration may need editing", err))
		return
	}
	o.Console.Successf("Database connection verified")
}

// emit produces one configuration document per requested target. VS Code
// output is display-only so a richer existing settings document is never
// clobbered; Claude Desktop is written in place after a backup.
func (o *Orchestrator) emit(art acquire.Artifact) error {
	targets := o.Session.Targets.Requested()
	if len(targets) == 0 {
		o.Console.Infof("No client configurations requested.")
		return nil
	}

	for _, target := range targets {
		cfg := clientcfg.Build(o.Session, target, art.EntryPoint)
		switch target {
		case session.VSCode:
			doc, err := cfg.Document()
			if err != nil {
				return err
			}
			o.Console.Infof("Merge this into your VS Code settings (settings.json):")
			o.Console.Printf("%s\n", doc)
		case session.ClaudeDesktop:
			path := o.ClaudePath
			if path == "" {
				var err error
				path, err = clientcfg.ClaudeConfigPath("")
				if err != nil {
					return err
				}
			}
			backup, err := clientcfg.WriteClaude(cfg, path, o.Now)
			if err != nil {
				return err
			}
			if backup != "" {
				o.Console.Infof("Existing Claude Desktop config backed up to %s", backup)
			}
			o.Console.Successf("Claude Desktop config written: %s", path)
		}
	}
	return nil
}
