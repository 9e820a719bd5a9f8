// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package provision

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"sqlmcp/cli/internal/console"
)

func newConsole(p console.Prompter) *console.Console {
	return console.NewWithWriter(p, io.Discard, nil)
}

func TestProvisionCreatesMissingDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "mssql-mcp")
	got, err := Provision(root, newConsole(&console.Scripted{}))
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	info, err := os.Stat(got)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s, stat err = %v", got, err)
	}
}

func TestProvisionDeclinedLeavesContentsUntouched(t *testing.T) {
	root := t.TempDir()
	marker := filepath.Join(root, "keep.txt")
	if err := os.WriteFile(marker, []byte("precious"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Provision(root, newConsole(&console.Scripted{Confirms: []bool{false}}))
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("Provision() error = %v, want ErrDeclined", err)
	}

	data, err := os.ReadFile(marker)
	if err != nil || string(data) != "precious" {
		t.Errorf("pre-existing file mutated: %q, err %v", data, err)
	}
}

func TestProvisionConfirmedResetsDirectory(t *testing.T) {
	root := t.TempDir()
	stale := filepath.Join(root, "stale.txt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Provision(root, newConsole(&console.Scripted{Confirms: []bool{true}}))
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale file survived reset: %v", err)
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("directory missing after reset: %v", err)
	}
}
