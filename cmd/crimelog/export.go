package main

import (
	"fmt"

	"github.com/campuslogs/crimelog/infrastructure/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		flags commonFlags
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every table to CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := newClient(flags)
			if err != nil {
				return err
			}
			defer client.Close()

			if dir == "" {
				dir = cfg.ExportDir()
			}

			paths, err := export.ExportTables(cmd.Context(), client.Database(), dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&flags.dbURL, "db-url", "", "Database URL override")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default: configured export dir)")

	return cmd
}
