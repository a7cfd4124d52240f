// Package main is the entry point for the carelink-cli application.
// It registers the administrative sub-commands (schema migration, account
// bootstrap, audit and compliance maintenance, key generation) and executes them.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/profyt7/carelinkai-sub005/cmd/carelink-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "carelink-cli",
		Short: "CareLinkAI administration CLI tool",
		Long: `carelink-cli runs administrative tasks against a CareLinkAI deployment.
It reads the same configuration as the REST server: the YAML file named by
--config (or CONFIG_PATH) overlaid with CARELINK_* environment variables.`,
		SilenceUsage: true,
	}
	commands.AddConfigFlag(rootCmd)

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitAdminCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize admin commands: %w", err)
	}

	if err := commands.InitMaintenanceCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize maintenance commands: %w", err)
	}

	if err := commands.InitKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
