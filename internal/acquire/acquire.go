// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package acquire fetches the upstream MSSQL MCP server source into the
// installation root and performs the initial build, discovering the built
// entry point.
package acquire

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sqlmcp/cli/internal/console"
	apperrors "sqlmcp/cli/internal/errors"
	"sqlmcp/cli/internal/runner"
)

const (
	// RepoURL is the upstream repository carrying the server.
	RepoURL = "https://github.com/Azure-Samples/SQL-AI-samples.git"
	// repoDirName is the directory the clone lands in under the root.
	repoDirName = "SQL-AI-samples"
	// entryName is the built entry point's file name.
	entryName = "index.js"
)

// serverSubdir is the subproject containing the Node server, relative to the
// clone.
var serverSubdir = filepath.Join("MssqlMcp", "Node")

// conventionalEntry is where the build normally leaves the entry point,
// relative to the subproject.
var conventionalEntry = filepath.Join("dist", entryName)

// patchableSource is the source file the auth patcher may replace, relative
// to the subproject.
var patchableSource = filepath.Join("src", "index.ts")

// Artifact describes the built server. Produced once per run and read-only
// thereafter.
type Artifact struct {
	// EntryPoint is the absolute path of the built executable entry point.
	EntryPoint string
	// ServerDir is the absolute path of the server subproject, where
	// rebuilds run.
	ServerDir string
	// PatchableSource is the absolute path of the source file that a patch
	// would replace. The file may not exist, e.g. for compiled-only
	// distributions.
	PatchableSource string
}

// Acquirer clones and builds the upstream server.
type Acquirer struct {
	Runner  runner.Runner
	Console *console.Console
}

// Acquire fetches the upstream repository into root, builds the server
// subproject, and locates the entry point. Build tool output layouts drift
// between versions, so when the conventional dist path is empty the
// subproject is searched recursively for the entry file name before giving
// up.
func (a *Acquirer) Acquire(ctx context.Context, root string) (Artifact, error) {
	cloneDir := filepath.Join(root, repoDirName)

	stop := a.Console.Spinner("Cloning " + RepoURL)
	out, err := a.Runner.Run(ctx, root, "git", "clone", "--depth", "1", RepoURL, cloneDir)
	stop()
	if err != nil {
		a.Console.Errorf("git clone failed: %s", strings.TrimSpace(out))
		return Artifact{}, apperrors.Wrap(apperrors.CloneFailed, "could not fetch "+RepoURL, err)
	}

	serverDir := filepath.Join(cloneDir, serverSubdir)
	if _, err := os.Stat(serverDir); err != nil {
		return Artifact{}, apperrors.Wrap(apperrors.CloneFailed, "server subproject missing at "+serverDir, err)
	}

	stop = a.Console.Spinner("Installing dependencies (this can take a while)")
	out, err = a.Runner.Run(ctx, serverDir, "npm", "install")
	stop()
	if err != nil {
		a.Console.Errorf("npm install failed: %s", tail(out))
		return Artifact{}, apperrors.Wrap(apperrors.BuildFailed, "npm install failed", err)
	}

	stop = a.Console.Spinner("Building the server")
	out, err = a.Runner.Run(ctx, serverDir, "npm", "run", "build")
	stop()
	if err != nil {
		a.Console.Errorf("npm run build failed: %s", tail(out))
		return Artifact{}, apperrors.Wrap(apperrors.BuildFailed, "npm run build failed", err)
	}

	entry, err := a.locateEntry(serverDir)
	if err != nil {
		return Artifact{}, err
	}
	a.Console.Successf("Server built: %s", entry)

	return Artifact{
		EntryPoint:      entry,
		ServerDir:       serverDir,
		PatchableSource: filepath.Join(serverDir, patchableSource),
	}, nil
}

// locateEntry returns the built entry point, preferring the conventional
// path and falling back to a recursive search.
func (a *Acquirer) locateEntry(serverDir string) (string, error) {
	conventional := filepath.Join(serverDir, conventionalEntry)
	if _, err := os.Stat(conventional); err == nil {
		return conventional, nil
	}

	a.Console.Warnf("Entry point not at %s, searching the subproject", conventional)
	candidates := findByName(serverDir, entryName)
	if len(candidates) > 0 {
		return candidates[0], nil
	}

	msg := "no " + entryName + " found under " + serverDir
	// Widen the search once more for debugging context only.
	if wider := findByName(filepath.Dir(serverDir), entryName); len(wider) > 0 {
		msg += "; nearby candidates: " + strings.Join(wider, ", ")
	}
	return "", apperrors.New(apperrors.ArtifactNotFound, msg)
}

// findByName walks dir for files named name, skipping node_modules. Results
// come back shallowest first, so the conventional layouts win over deeply
// nested stragglers.
func findByName(dir, name string) []string {
	var found []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && d.Name() == "node_modules" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == name {
			found = append(found, path)
		}
		return nil
	})
	sort.SliceStable(found, func(i, j int) bool {
		return depth(found[i]) < depth(found[j])
	})
	return found
}

func depth(p string) int {
	return strings.Count(p, string(filepath.Separator))
}

// tail returns the last few lines of command output for error display.
func tail(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}
