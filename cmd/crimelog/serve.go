package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/campuslogs/crimelog/infrastructure/api"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		flags commonFlags
		host  string
		port  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the read-only HTTP API",
		Long: `Start the HTTP API serving the named reports.

Environment variables:
  HOST            Server host to bind to (default: 0.0.0.0)
  PORT            Server port to listen on (default: 8080)
  DATA_DIR        Data directory (default: ~/.crimelog)
  DB_URL          Database URL (default: sqlite:///{data_dir}/crimelog.db)
  LOG_LEVEL       Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT      Log format: pretty, json (default: pretty)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags, host, port)
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&flags.dbURL, "db-url", "", "Database URL override")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on")

	return cmd
}

func runServe(flags commonFlags, host string, port int) error {
	client, cfg, err := newClient(flags)
	if err != nil {
		return err
	}
	defer client.Close()

	if host != "" {
		cfg = cfg.WithHost(host)
	}
	if port != 0 {
		cfg = cfg.WithPort(port)
	}

	server := api.NewServer(cfg.Addr(), client.Reports, client.Logger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		if err := server.Shutdown(ctx); err != nil {
			client.Logger().Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
