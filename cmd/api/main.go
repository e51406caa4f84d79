package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lifedesk/core/cmd/api/commands"
)

// @title LifeDesk API
// @version 1.0
// @description Personal records backend: todos, reminders, bookmarks, server status and a running-balance ledger

// @host localhost:8080
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifedesk",
		Short: "LifeDesk API Server",
		Long:  `LifeDesk is a single-user personal records backend covering todos, recurring reminders, bookmarks, server-status reports and a double-sided balance ledger.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewInitDBCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
