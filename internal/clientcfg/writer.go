// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package clientcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteClaude writes the Claude Desktop document to path, backing up any
// pre-existing file to a timestamped sibling first. The written file is
// private (0600) because it may carry SQL credentials. now is the clock for
// the backup suffix; nil means time.Now.
//
// It returns the backup path, or "" when there was nothing to back up.
func WriteClaude(c ClientConfig, path string, now func() time.Time) (string, error) {
	if now == nil {
		now = time.Now
	}
	doc, err := c.Document()
	if err != nil {
		return "", err
	}

	backup := ""
	if existing, err := os.ReadFile(path); err == nil {
		backup = path + ".backup." + now().Format("20060102_150405")
		if err := os.WriteFile(backup, existing, 0o600); err != nil {
			return "", fmt.Errorf("back up existing config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read existing config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backup, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		return backup, fmt.Errorf("write config: %w", err)
	}
	return backup, nil
}
