// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"sqlmcp/cli/internal/xdg"
)

// NewSessionLogger returns a logrus logger appending to install.log in the
// state directory, as an audit trail of every external command and outcome.
// Verbose lowers the level to debug. If the state dir cannot be resolved the
// logger is still usable and discards everything.
func NewSessionLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	dir, err := xdg.StateDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	f, err := os.OpenFile(filepath.Join(dir, "install.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	return log
}
