// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package clientcfg builds configuration documents that client hosts use to
// launch the installed server as a subprocess. Each document is derived from
// the session and built fresh per target; it is never mutated after
// construction.
package clientcfg

import (
	"encoding/json"
	"fmt"
	"strconv"

	"sqlmcp/cli/internal/session"
)

// ServerKey is the display name both client hosts key the server entry by.
const ServerKey = "mssql"

// claudeTopLevelKey is the fixed top-level key of the Claude Desktop
// document.
const claudeTopLevelKey = "mcpServers"

// vscodeTopLevelKey and vscodeServersKey nest the VS Code server entry the
// way user settings expect it, so the printed document can be merged as-is.
const (
	vscodeTopLevelKey = "mcp"
	vscodeServersKey  = "servers"
)

// ClientConfig is one emitted configuration: the target it is for, the
// launch command, and the environment the server reads its connection
// details from.
type ClientConfig struct {
	Target  session.ClientTarget
	Command string
	Args    []string
	Env     map[string]string
}

// serverEntry is the per-server JSON shape shared by both hosts. Type is
// only present in the VS Code variant.
type serverEntry struct {
	Type    string            `json:"type,omitempty"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// Build derives the configuration for one target from the session. In SQL
// authentication mode the mapping carries USERNAME and PASSWORD; in Azure AD
// mode both keys are absent. The two never coexist.
func Build(s *session.Session, target session.ClientTarget, artifactPath string) ClientConfig {
	env := map[string]string{
		"SERVER_NAME":              s.Server,
		"DATABASE_NAME":            s.Database,
		"READONLY":                 strconv.FormatBool(s.ReadOnly),
		"ENCRYPT":                  s.Encrypt,
		"TRUST_SERVER_CERTIFICATE": strconv.FormatBool(s.TrustServerCertificate),
	}
	if s.Mode == session.SQLAuth {
		env["USERNAME"] = s.Username
		env["PASSWORD"] = s.Password
	}
	return ClientConfig{
		Target:  target,
		Command: "node",
		Args:    []string{artifactPath},
		Env:     env,
	}
}

// Document renders the JSON document in the shape the target host expects.
//
// VS Code gets the server entry keyed by display name with a "stdio" type
// discriminator, nested under mcp.servers so the printed document can be
// merged into the user's settings by hand. Claude Desktop gets the same
// entry, without the discriminator, under the fixed mcpServers key.
func (c ClientConfig) Document() ([]byte, error) {
	entry := serverEntry{Command: c.Command, Args: c.Args, Env: c.Env}

	var doc any
	switch c.Target {
	case session.VSCode:
		entry.Type = "stdio"
		doc = map[string]map[string]map[string]serverEntry{
			vscodeTopLevelKey: {vscodeServersKey: {ServerKey: entry}},
		}
	case session.ClaudeDesktop:
		doc = map[string]map[string]serverEntry{
			claudeTopLevelKey: {ServerKey: entry},
		}
	default:
		return nil, fmt.Errorf("unknown client target %q", c.Target)
	}
	return json.MarshalIndent(doc, "", "  ")
}
