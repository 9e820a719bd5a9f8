// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package provision creates or resets the installation root directory.
package provision

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sqlmcp/cli/internal/console"
)

// ErrDeclined is returned when the operator keeps an existing directory.
// It is a soft exit, not a failure: nothing was removed, so the process
// should end with status 0.
var ErrDeclined = errors.New("existing installation directory kept")

// Provision ensures path exists as a fresh directory and returns its
// absolute form.
//
// If path already exists, Provision asks for explicit confirmation and then
// DELETES the directory and everything under it before recreating it. That
// removal is irreversible. Declining the prompt returns ErrDeclined with no
// file-system mutation. Intermediate ancestors are created as needed.
func Provision(path string, c *console.Console) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(abs); err == nil {
		c.Warnf("Directory %s already exists.", abs)
		yes, err := c.Confirm("Delete it and start over? All contents will be removed.", false)
		if err != nil {
			return "", err
		}
		if !yes {
			return "", ErrDeclined
		}
		if err := os.RemoveAll(abs); err != nil {
			return "", fmt.Errorf("remove %s: %w", abs, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", abs, err)
	}
	c.Infof("Installation directory ready: %s", abs)
	return abs, nil
}
