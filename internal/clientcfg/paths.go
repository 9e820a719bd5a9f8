// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package clientcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// claudeConfigFile is the file name Claude Desktop reads on every platform.
const claudeConfigFile = "claude_desktop_config.json"

// ClaudeConfigPath returns the conventional Claude Desktop configuration
// path for goos (empty means the current platform).
func ClaudeConfigPath(goos string) (string, error) {
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", claudeConfigFile), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(appData, "Claude", claudeConfigFile), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "Claude", claudeConfigFile), nil
	}
}
