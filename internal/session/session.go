// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session defines the installation session: the single parameter set
// that describes one installation run. The session is assembled from flags,
// the environment, and interactive prompts before any side effect occurs, and
// is treated as read-only by every component from that point on.
package session

import "fmt"

// AuthMode selects how the installed server authenticates against SQL Server.
type AuthMode string

const (
	// SQLAuth uses a SQL Server login (username + password).
	SQLAuth AuthMode = "sql"
	// AzureAD uses Azure Active Directory; no credentials are embedded in
	// emitted configuration.
	AzureAD AuthMode = "azure-ad"
)

// ClientTarget identifies a host application that consumes emitted
// configuration to launch the server as a subprocess.
type ClientTarget string

const (
	VSCode        ClientTarget = "vscode"
	ClaudeDesktop ClientTarget = "claude-desktop"
)

// DefaultEncrypt is the connection encryption setting written into every
// emitted configuration. The installer does not expose a flag for it.
const DefaultEncrypt = "optional"

// Session holds the parameters of one installation run.
type Session struct {
	// Path is the installation root directory.
	Path string
	// Server is the SQL Server hostname (optionally host,port).
	Server string
	// Database is the target database name.
	Database string
	// Username and Password are set only when Mode is SQLAuth.
	Username string
	Password string
	// Mode selects the authentication mode baked into emitted configs.
	Mode AuthMode
	// ReadOnly marks the server connection as read-only.
	ReadOnly bool
	// Encrypt is the connection encryption setting; fixed to DefaultEncrypt.
	Encrypt string
	// TrustServerCertificate skips certificate validation on the connection.
	TrustServerCertificate bool
	// Targets is the set of client hosts to emit configuration for.
	Targets Targets
}

// Targets is the set of requested client hosts. Both, one, or neither may be
// selected.
type Targets struct {
	VSCode        bool
	ClaudeDesktop bool
}

// Requested returns the selected targets in a stable order.
func (t Targets) Requested() []ClientTarget {
	var out []ClientTarget
	if t.VSCode {
		out = append(out, VSCode)
	}
	if t.ClaudeDesktop {
		out = append(out, ClaudeDesktop)
	}
	return out
}

// New returns a session with fixed defaults applied.
func New() *Session {
	return &Session{Mode: SQLAuth, Encrypt: DefaultEncrypt}
}

// Validate checks the session invariants that must hold before any
// configuration is emitted.
func (s *Session) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("installation path is required")
	}
	if s.Server == "" {
		return fmt.Errorf("server name is required")
	}
	if s.Database == "" {
		return fmt.Errorf("database name is required")
	}
	switch s.Mode {
	case SQLAuth:
		if s.Username == "" || s.Password == "" {
			return fmt.Errorf("SQL authentication requires both username and password")
		}
	case AzureAD:
		// Credentials, if supplied, are ignored by emission; nothing to check.
	default:
		return fmt.Errorf("unknown authentication mode %q", s.Mode)
	}
	return nil
}
