// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package clientcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sqlmcp/cli/internal/session"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestWriteClaudeFreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Claude", "claude_desktop_config.json")
	cfg := Build(sqlSession(), session.ClaudeDesktop, "/x/index.js")

	backup, err := WriteClaude(cfg, path, fixedClock)
	if err != nil {
		t.Fatalf("WriteClaude() error = %v", err)
	}
	if backup != "" {
		t.Errorf("backup = %q, want none for a fresh file", backup)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 0600", perm)
	}
}

func TestWriteClaudeBacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claude_desktop_config.json")
	if err := os.WriteFile(path, []byte(`{"mcpServers":{}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := Build(sqlSession(), session.ClaudeDesktop, "/x/index.js")

	backup, err := WriteClaude(cfg, path, fixedClock)
	if err != nil {
		t.Fatalf("WriteClaude() error = %v", err)
	}
	want := path + ".backup.20250314_092653"
	if backup != want {
		t.Fatalf("backup = %q, want %q", backup, want)
	}
	old, err := os.ReadFile(backup)
	if err != nil || string(old) != `{"mcpServers":{}}` {
		t.Errorf("backup contents = %q, err %v", old, err)
	}
}

func TestClaudeConfigPathPerOS(t *testing.T) {
	t.Setenv("APPDATA", `C:\Users\u\AppData\Roaming`)

	tests := []struct {
		goos   string
		suffix string
	}{
		{goos: "darwin", suffix: filepath.Join("Library", "Application Support", "Claude", "claude_desktop_config.json")},
		{goos: "linux", suffix: filepath.Join(".config", "Claude", "claude_desktop_config.json")},
		{goos: "windows", suffix: filepath.Join("Claude", "claude_desktop_config.json")},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := ClaudeConfigPath(tt.goos)
			if err != nil {
				t.Fatalf("ClaudeConfigPath(%s) error = %v", tt.goos, err)
			}
			if !filepath.IsAbs(got) && tt.goos != "windows" {
				t.Errorf("path %q is not absolute", got)
			}
			if len(got) < len(tt.suffix) || got[len(got)-len(tt.suffix):] != tt.suffix {
				t.Errorf("ClaudeConfigPath(%s) = %q, want suffix %q", tt.goos, got, tt.suffix)
			}
		})
	}
}
