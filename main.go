// Package main is the entry point for the sqlmcp CLI application.
// It installs and configures the MSSQL MCP server for supported client hosts.
package main

import (
	"sqlmcp/cli/cmd"
)

// main is the entry point for the sqlmcp CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
