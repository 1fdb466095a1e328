// Package main is the entry point for promptctl, the operator CLI of the gallery backend.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kkh1902/promptsave-sub001/cmd/promptctl/internal/commands"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "promptctl",
		Short: "Operator commands for the gallery backend",
		Long: `promptctl runs maintenance tasks against the databases and Firebase project
configured by the same environment variables (or .env file) as the server.`,
		SilenceUsage: true,
	}

	commands.InitCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
