// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package patch replaces the server's entry source with a variant that adds
// SQL-credential authentication, then rebuilds. The patcher never fails the
// overall installation: every exit leaves the installation usable, either
// with the original file restored or with a degraded-but-present
// replacement.
package patch

import (
	"context"
	"os"
	"time"

	"sqlmcp/cli/internal/acquire"
	"sqlmcp/cli/internal/console"
	"sqlmcp/cli/internal/download"
	apperrors "sqlmcp/cli/internal/errors"
	"sqlmcp/cli/internal/logging"
	"sqlmcp/cli/internal/runner"
)

// VariantURL is the remote SQL-authentication-capable variant of the
// server's entry source.
const VariantURL = "https://raw.githubusercontent.com/Azure-Samples/SQL-AI-samples/sql-auth/MssqlMcp/Node/src/index.ts"

// backupTimestampLayout produces <original>.backup.<YYYYMMDD_HHMMSS>.
const backupTimestampLayout = "20060102_150405"

// Outcome is the terminal state of one patch attempt.
type Outcome int

const (
	// Patched means the variant is in place and the rebuild succeeded.
	Patched Outcome = iota
	// Degraded means the run proceeds with a warning: either the patchable
	// source was absent, or the rebuild failed after a successful replace.
	Degraded
	// RolledBack means the download failed or was empty; the original file
	// was restored from its backup.
	RolledBack
)

func (o Outcome) String() string {
	switch o {
	case Patched:
		return "patched"
	case Degraded:
		return "degraded"
	case RolledBack:
		return "rolled back"
	}
	return "unknown"
}

// BackupRecord tracks the pre-patch copy of the source file. The backup file
// itself stays on disk as an audit trail; the record lives only for the
// process lifetime.
type BackupRecord struct {
	Original string
	Backup   string
	Restored bool
}

// Patcher applies the SQL-auth patch.
type Patcher struct {
	Runner  runner.Runner
	Fetcher download.Fetcher
	Console *console.Console
	// Now is the clock for backup timestamps; nil means time.Now.
	Now func() time.Time
}

func (p *Patcher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Apply runs the patch sequence against the built artifact: locate, backup,
// replace, rebuild. The returned record is nil when no backup was taken.
func (p *Patcher) Apply(ctx context.Context, art acquire.Artifact) (Outcome, *BackupRecord) {
	src := art.PatchableSource

	if _, err := os.Stat(src); err != nil {
		p.Console.Warnf("Patchable source %s not found; SQL authentication may not function", src)
		return Degraded, nil
	}

	original, err := os.ReadFile(src)
	if err != nil {
		p.Console.Warnf("Could not read %s: %v; leaving the server untouched", src, err)
		return Degraded, nil
	}
	rec := &BackupRecord{
		Original: src,
		Backup:   src + ".backup." + p.now().Format(backupTimestampLayout),
	}
	if err := os.WriteFile(rec.Backup, original, 0o644); err != nil {
		p.Console.Warnf("Could not back up %s: %v; leaving the server untouched", src, err)
		return Degraded, nil
	}
	p.Console.Infof("Backed up %s", rec.Backup)

	variant, err := p.Fetcher.Fetch(ctx, VariantURL)
	switch {
	case err != nil:
		return p.rollback(rec, original, apperrors.Wrap(apperrors.DownloadFailed, "could not download the SQL-auth variant", err))
	case len(variant) == 0:
		return p.rollback(rec, original, apperrors.New(apperrors.EmptyDownload, "the downloaded variant is empty"))
	}
	if err := os.WriteFile(src, variant, 0o644); err != nil {
		return p.rollback(rec, original, apperrors.Wrap(apperrors.DownloadFailed, "could not write the replacement", err))
	}
	p.Console.Infof("Replaced %s with SQL-auth variant", src)

	if err := p.rebuild(ctx, art.ServerDir); err != nil {
		// A rebuild warning does not necessarily mean the artifact is
		// unusable; keep the replaced source and proceed.
		p.Console.Warnf("%s", logging.PresentError("Rebuild failed; the previously built server is still in place", err))
		p.Console.Warnf("Re-run 'npm run build' in %s to pick up the patch.", art.ServerDir)
		return Degraded, rec
	}
	p.Console.Successf("Server rebuilt with SQL authentication support")
	return Patched, rec
}

// rollback restores the original contents and surfaces manual-remediation
// instructions instead of aborting the run.
func (p *Patcher) rollback(rec *BackupRecord, original []byte, cause *apperrors.E) (Outcome, *BackupRecord) {
	if err := os.WriteFile(rec.Original, original, 0o644); err != nil {
		p.Console.Errorf("Rollback of %s failed: %v; restore it by hand from %s", rec.Original, err, rec.Backup)
		return RolledBack, rec
	}
	rec.Restored = true
	p.Console.Warnf("%s", logging.PresentError("SQL-auth patch skipped; original restored", cause))
	p.Console.Warnf("To patch manually, download %s to %s and rebuild.", VariantURL, rec.Original)
	return RolledBack, rec
}

// rebuild re-runs the standard build, falling back to invoking the compiler
// directly when the npm script is the thing that broke.
func (p *Patcher) rebuild(ctx context.Context, serverDir string) error {
	if _, err := p.Runner.Run(ctx, serverDir, "npm", "install"); err == nil {
		if _, err := p.Runner.Run(ctx, serverDir, "npm", "run", "build"); err == nil {
			return nil
		}
	}
	if _, err := p.Runner.Run(ctx, serverDir, "npx", "tsc"); err != nil {
		return apperrors.Wrap(apperrors.RebuildFailed, "npm build and direct compile both failed", err)
	}
	return nil
}
