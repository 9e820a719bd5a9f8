// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package clientcfg

import (
	"bytes"
	"encoding/json"
	"testing"

	"sqlmcp/cli/internal/session"
)

func sqlSession() *session.Session {
	s := session.New()
	s.Path = "/opt/mssql-mcp"
	s.Server = "db.example.com"
	s.Database = "orders"
	s.Username = "svc"
	s.Password = "secret"
	s.ReadOnly = true
	return s
}

func TestBuildSQLAuthMapping(t *testing.T) {
	cfg := Build(sqlSession(), session.VSCode, "/opt/mssql-mcp/dist/index.js")

	want := map[string]string{
		"SERVER_NAME":              "db.example.com",
		"DATABASE_NAME":            "orders",
		"READONLY":                 "true",
		"ENCRYPT":                  "optional",
		"TRUST_SERVER_CERTIFICATE": "false",
		"USERNAME":                 "svc",
		"PASSWORD":                 "secret",
	}
	if len(cfg.Env) != len(want) {
		t.Fatalf("env has %d keys, want %d: %v", len(cfg.Env), len(want), cfg.Env)
	}
	for k, v := range want {
		if cfg.Env[k] != v {
			t.Errorf("env[%s] = %q, want %q", k, cfg.Env[k], v)
		}
	}
}

func TestBuildAzureADMapping(t *testing.T) {
	s := sqlSession()
	s.Mode = session.AzureAD

	cfg := Build(s, session.ClaudeDesktop, "/opt/mssql-mcp/dist/index.js")

	for _, k := range []string{"USERNAME", "PASSWORD"} {
		if _, ok := cfg.Env[k]; ok {
			t.Errorf("env contains %s in Azure AD mode", k)
		}
	}
	wantKeys := []string{"SERVER_NAME", "DATABASE_NAME", "READONLY", "ENCRYPT", "TRUST_SERVER_CERTIFICATE"}
	if len(cfg.Env) != len(wantKeys) {
		t.Fatalf("env has %d keys, want exactly %v: %v", len(cfg.Env), wantKeys, cfg.Env)
	}
	for _, k := range wantKeys {
		if _, ok := cfg.Env[k]; !ok {
			t.Errorf("env missing %s", k)
		}
	}
}

func TestDocumentShapes(t *testing.T) {
	artifact := "/opt/mssql-mcp/dist/index.js"

	t.Run("vscode", func(t *testing.T) {
		doc, err := Build(sqlSession(), session.VSCode, artifact).Document()
		if err != nil {
			t.Fatal(err)
		}
		var parsed map[string]map[string]map[string]struct {
			Type    string            `json:"type"`
			Command string            `json:"command"`
			Args    []string          `json:"args"`
			Env     map[string]string `json:"env"`
		}
		if err := json.Unmarshal(doc, &parsed); err != nil {
			t.Fatal(err)
		}
		// The document must be mergeable as-is: the entry sits under
		// mcp.servers, not at the top level.
		servers, ok := parsed["mcp"]["servers"]
		if !ok {
			t.Fatalf("document not nested under mcp.servers: %s", doc)
		}
		entry, ok := servers[ServerKey]
		if !ok {
			t.Fatalf("mcp.servers not keyed by %q: %s", ServerKey, doc)
		}
		if entry.Type != "stdio" {
			t.Errorf("type = %q, want stdio", entry.Type)
		}
		if entry.Command != "node" || len(entry.Args) != 1 || entry.Args[0] != artifact {
			t.Errorf("launch = %s %v, want node [%s]", entry.Command, entry.Args, artifact)
		}
	})

	t.Run("claude desktop", func(t *testing.T) {
		doc, err := Build(sqlSession(), session.ClaudeDesktop, artifact).Document()
		if err != nil {
			t.Fatal(err)
		}
		var parsed map[string]map[string]map[string]any
		if err := json.Unmarshal(doc, &parsed); err != nil {
			t.Fatal(err)
		}
		entry, ok := parsed["mcpServers"][ServerKey]
		if !ok {
			t.Fatalf("document missing mcpServers.%s: %s", ServerKey, doc)
		}
		if _, ok := entry["type"]; ok {
			t.Errorf("claude entry carries a type discriminator")
		}
	})
}

func TestDocumentIdempotent(t *testing.T) {
	a, err := Build(sqlSession(), session.ClaudeDesktop, "/x/index.js").Document()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(sqlSession(), session.ClaudeDesktop, "/x/index.js").Document()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("documents differ across identical sessions:\n%s\n%s", a, b)
	}
}
