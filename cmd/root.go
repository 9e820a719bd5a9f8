// Copyright (c) 2025 sqlmcp contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the sqlmcp installer.
// It implements the install and verify subcommands using the Cobra CLI
// framework, and provides a terminal UI with severity-tagged messages and
// progress indicators.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "sqlmcp",
	Short:         "Install and configure the MSSQL MCP server",
	Long:          `sqlmcp provisions the MSSQL MCP server from upstream source, optionally patches it for SQL-credential authentication, and emits ready-to-use configuration for VS Code and Claude Desktop.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("sqlmcp %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}
