// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package verify checks that the session's connection details actually reach
// the target SQL Server before they are baked into client configurations.
package verify

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/microsoft/go-mssqldb" // sqlserver driver

	"sqlmcp/cli/internal/session"
)

// ErrAzureAD is returned when verification is requested for an Azure AD
// session; the installer holds no directory token to log in with.
var ErrAzureAD = fmt.Errorf("connection verification is only supported for SQL authentication")

// DSN builds the sqlserver connection URL for the session.
func DSN(s *session.Session) string {
	u := url.URL{
		Scheme: "sqlserver",
		Host:   s.Server,
		User:   url.UserPassword(s.Username, s.Password),
	}
	q := url.Values{}
	q.Set("database", s.Database)
	q.Set("encrypt", s.Encrypt)
	q.Set("trustservercertificate", strconv.FormatBool(s.TrustServerCertificate))
	u.RawQuery = q.Encode()
	return u.String()
}

// Ping opens a connection with the session's credentials and waits for the
// server to answer, with a 5-second ceiling.
func Ping(ctx context.Context, s *session.Session) error {
	if s.Mode != session.SQLAuth {
		return ErrAzureAD
	}
	db, err := sql.Open("sqlserver", DSN(s))
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping %s: %w", s.Server, err)
	}
	return nil
}
