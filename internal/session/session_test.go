// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Session)
		expectError bool
	}{
		{
			name:   "sql auth with credentials",
			mutate: func(s *Session) {},
		},
		{
			name: "sql auth missing password",
			mutate: func(s *Session) {
				s.Password = ""
			},
			expectError: true,
		},
		{
			name: "sql auth missing username",
			mutate: func(s *Session) {
				s.Username = ""
			},
			expectError: true,
		},
		{
			name: "azure ad without credentials",
			mutate: func(s *Session) {
				s.Mode = AzureAD
				s.Username = ""
				s.Password = ""
			},
		},
		{
			name: "missing server",
			mutate: func(s *Session) {
				s.Server = ""
			},
			expectError: true,
		},
		{
			name: "missing database",
			mutate: func(s *Session) {
				s.Database = ""
			},
			expectError: true,
		},
		{
			name: "missing path",
			mutate: func(s *Session) {
				s.Path = ""
			},
			expectError: true,
		},
		{
			name: "unknown mode",
			mutate: func(s *Session) {
				s.Mode = AuthMode("kerberos")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Path = "/tmp/mssql-mcp"
			s.Server = "db.example.com"
			s.Database = "orders"
			s.Username = "svc"
			s.Password = "secret"
			tt.mutate(s)
			err := s.Validate()
			if tt.expectError && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestTargetsRequested(t *testing.T) {
	tests := []struct {
		name    string
		targets Targets
		want    []ClientTarget
	}{
		{name: "both", targets: Targets{VSCode: true, ClaudeDesktop: true}, want: []ClientTarget{VSCode, ClaudeDesktop}},
		{name: "vscode only", targets: Targets{VSCode: true}, want: []ClientTarget{VSCode}},
		{name: "claude only", targets: Targets{ClaudeDesktop: true}, want: []ClientTarget{ClaudeDesktop}},
		{name: "neither", targets: Targets{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.targets.Requested()
			if len(got) != len(tt.want) {
				t.Fatalf("Requested() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Requested()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	s := New()
	if s.Mode != SQLAuth {
		t.Errorf("New().Mode = %v, want %v", s.Mode, SQLAuth)
	}
	if s.Encrypt != DefaultEncrypt {
		t.Errorf("New().Encrypt = %q, want %q", s.Encrypt, DefaultEncrypt)
	}
}
