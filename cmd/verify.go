// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"sqlmcp/cli/internal/console"
	"sqlmcp/cli/internal/logging"
	"sqlmcp/cli/internal/session"
	"sqlmcp/cli/internal/verify"
)

var (
	verifyServer    string
	verifyDatabase  string
	verifyUsername  string
	verifyPassword  string
	verifyTrustCert bool
)

// verifyCmd checks that the given connection parameters actually reach the
// target SQL Server, without installing anything.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify SQL Server connection parameters",
	Long: `The verify command opens a connection to the target SQL Server with the
supplied credentials and reports whether the login succeeds. Nothing is
installed or written; use it to validate parameters before 'sqlmcp install'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := console.New(console.TerminalPrompter{}, nil)

		s := session.New()
		s.Path = "unused"
		s.Server = verifyServer
		s.Database = verifyDatabase
		s.Username = verifyUsername
		s.Password = verifyPassword
		s.TrustServerCertificate = verifyTrustCert

		var err error
		if s.Server == "" {
			if s.Server, err = c.Input("SQL Server hostname"); err != nil {
				return err
			}
		}
		if s.Database == "" {
			if s.Database, err = c.Input("Database name"); err != nil {
				return err
			}
		}
		if s.Username == "" {
			if s.Username, err = c.Input("SQL username"); err != nil {
				return err
			}
		}
		if s.Password == "" {
			if s.Password, err = c.Password("SQL password"); err != nil {
				return err
			}
		}
		if err := s.Validate(); err != nil {
			return err
		}

		stopSpinner := startInlineSpinner(os.Stdout, "verifying connection", []string{"-", "\\", "|", "/"}, 100*time.Millisecond)
		pingErr := verify.Ping(cmd.Context(), s)
		stopSpinner()

		if pingErr != nil {
			c.Errorf("%s", logging.PresentError("Connection failed", pingErr))
			return pingErr
		}
		c.Successf("Connection to %s/%s verified", s.Server, s.Database)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyServer, "server", "", "SQL Server hostname")
	verifyCmd.Flags().StringVar(&verifyDatabase, "database", "", "Database name")
	verifyCmd.Flags().StringVar(&verifyUsername, "username", "", "SQL username")
	verifyCmd.Flags().StringVar(&verifyPassword, "password", "", "SQL password")
	verifyCmd.Flags().BoolVar(&verifyTrustCert, "trust-server-certificate", false, "Trust the server certificate")
}
