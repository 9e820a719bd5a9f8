// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sqlmcp/cli/internal/console"
	"sqlmcp/cli/internal/download"
	"sqlmcp/cli/internal/logging"
	"sqlmcp/cli/internal/orchestrator"
	"sqlmcp/cli/internal/runner"
	"sqlmcp/cli/internal/session"
)

var (
	installPath      string
	installServer    string
	installDatabase  string
	installUsername  string
	installPassword  string
	installAzureAD   bool
	installReadOnly  bool
	installTrustCert bool
	installSkipCheck bool
	installVSCode    bool
	installClaude    bool
	installVerify    bool
	verboseInstall   bool
)

// installCmd provisions the MSSQL MCP server end to end: prerequisite tools,
// installation directory, upstream source and build, the optional SQL-auth
// patch, and client configuration documents.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Provision the MSSQL MCP server and emit client configurations",
	Long: `The install command fetches the MSSQL MCP server from its upstream repository,
builds it, optionally patches it for SQL-credential authentication, and emits
configuration for VS Code and Claude Desktop.

Parameters not supplied as flags are collected interactively before anything
touches the file system. Defaults for --server and --database are read from
SERVER_NAME and DATABASE_NAME in the environment or a local .env file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// A local .env can pre-fill connection parameters; absence is fine.
		_ = godotenv.Load()

		log := logging.NewSessionLogger(verboseInstall)
		c := console.New(console.TerminalPrompter{}, log)

		s, err := buildSession(cmd, c)
		if err != nil {
			return err
		}

		// Masked echo of the effective session before any side effect.
		pterm.Println()
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Server:    ") + pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(s.Server))
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Database:  ") + pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(s.Database))
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Auth mode: ") + pterm.NewStyle(pterm.FgLightBlue).Sprint(string(s.Mode)))
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Install to:") + " " + pterm.NewStyle(pterm.FgLightBlue).Sprint(s.Path))
		pterm.Println()
		log.Infof("session: %s", logging.Mask(sessionSummary(s)))

		o := &orchestrator.Orchestrator{
			Session:         s,
			Console:         c,
			Runner:          &runner.Exec{Log: log},
			Fetcher:         download.NewHTTP(),
			SkipPrereqCheck: installSkipCheck,
			Verify:          installVerify,
		}
		return o.Run(cmd.Context())
	},
}

// buildSession assembles the immutable session from flags, the environment,
// and interactive prompts. All prompting completes here, before acquisition
// begins.
func buildSession(cmd *cobra.Command, c *console.Console) (*session.Session, error) {
	s := session.New()
	s.Server = firstNonEmpty(installServer, os.Getenv("SERVER_NAME"))
	s.Database = firstNonEmpty(installDatabase, os.Getenv("DATABASE_NAME"))
	s.Username = installUsername
	s.Password = installPassword
	s.ReadOnly = installReadOnly
	s.TrustServerCertificate = installTrustCert
	if installAzureAD {
		s.Mode = session.AzureAD
	}

	var err error
	if s.Server == "" {
		if s.Server, err = c.Input("SQL Server hostname (e.g. myserver.database.windows.net)"); err != nil {
			return nil, err
		}
	}
	if s.Database == "" {
		if s.Database, err = c.Input("Database name"); err != nil {
			return nil, err
		}
	}
	if s.Mode == session.SQLAuth {
		if s.Username == "" {
			if s.Username, err = c.Input("SQL username"); err != nil {
				return nil, err
			}
		}
		if s.Password == "" {
			if s.Password, err = c.Password("SQL password"); err != nil {
				return nil, err
			}
		}
	}

	s.Path = installPath
	if s.Path == "" {
		def := defaultInstallPath()
		entered, err := c.Input("Installation directory [" + def + "]")
		if err != nil {
			return nil, err
		}
		s.Path = firstNonEmpty(strings.TrimSpace(entered), def)
	}

	s.Targets, err = chooseTargets(cmd, c)
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// chooseTargets honors explicit --vscode/--claude-desktop flags; when
// neither was given it asks.
func chooseTargets(cmd *cobra.Command, c *console.Console) (session.Targets, error) {
	if cmd.Flags().Changed("vscode") || cmd.Flags().Changed("claude-desktop") {
		return session.Targets{VSCode: installVSCode, ClaudeDesktop: installClaude}, nil
	}
	var t session.Targets
	var err error
	if t.VSCode, err = c.Confirm("Emit VS Code configuration?", true); err != nil {
		return t, err
	}
	if t.ClaudeDesktop, err = c.Confirm("Write Claude Desktop configuration?", true); err != nil {
		return t, err
	}
	return t, nil
}

func defaultInstallPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mssql-mcp"
	}
	return filepath.Join(home, "mssql-mcp")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sessionSummary(s *session.Session) string {
	parts := []string{
		"server=" + s.Server,
		"database=" + s.Database,
		"mode=" + string(s.Mode),
		"path=" + s.Path,
	}
	if s.Mode == session.SQLAuth {
		parts = append(parts, "username="+s.Username, "password="+s.Password)
	}
	return strings.Join(parts, " ")
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&installPath, "path", "", "Installation directory")
	installCmd.Flags().StringVar(&installServer, "server", "", "SQL Server hostname")
	installCmd.Flags().StringVar(&installDatabase, "database", "", "Database name")
	installCmd.Flags().StringVar(&installUsername, "username", "", "SQL username (SQL authentication)")
	installCmd.Flags().StringVar(&installPassword, "password", "", "SQL password (SQL authentication)")
	installCmd.Flags().BoolVar(&installAzureAD, "azure-ad", false, "Use Azure Active Directory authentication")
	installCmd.Flags().BoolVar(&installReadOnly, "read-only", false, "Mark the server connection read-only")
	installCmd.Flags().BoolVar(&installTrustCert, "trust-server-certificate", false, "Trust the server certificate")
	installCmd.Flags().BoolVar(&installSkipCheck, "skip-prereq-check", false, "Skip the prerequisite tool check")
	installCmd.Flags().BoolVar(&installVSCode, "vscode", false, "Emit VS Code configuration")
	installCmd.Flags().BoolVar(&installClaude, "claude-desktop", false, "Write Claude Desktop configuration")
	installCmd.Flags().BoolVar(&installVerify, "verify", false, "Verify the database connection before emitting configs")
	installCmd.Flags().BoolVarP(&verboseInstall, "verbose", "v", false, "Enable verbose debug logging")
}
