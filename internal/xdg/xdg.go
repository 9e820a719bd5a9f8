// Package xdg provides helpers to resolve XDG Base Directory paths for sqlmcp.
// It handles fallback to traditional locations when XDG environment variables
// are not set and ensures private permissions for state storage, since the
// session log may describe machine layout.
package xdg

import (
	"os"
	"path/filepath"
)

// StateDir returns the XDG state directory for sqlmcp.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/sqlmcp when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, "sqlmcp")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
