// Package main is the entry point for the crimelog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/campuslogs/crimelog/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crimelog",
		Short: "Campus crime log scraper and query tool",
		Long:  `crimelog scrapes university daily crime logs into a relational store, reconciles duplicate campus records, and answers queries over the result.`,
	}

	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(reconcileCmd())
	cmd.AddCommand(reportCmd())
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
