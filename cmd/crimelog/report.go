package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/campuslogs/crimelog/application/service"
	"github.com/campuslogs/crimelog/domain/report"
	"github.com/campuslogs/crimelog/infrastructure/export"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		flags  commonFlags
		since  string
		until  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "report [name]",
		Short: "Run a named query over the store",
		Long: `Run one of the built-in reports and print it as a table or CSV.
Run without arguments to list the available reports.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(flags)
			if err != nil {
				return err
			}
			defer client.Close()

			if len(args) == 0 {
				for _, name := range client.Reports.Names() {
					desc, _ := client.Reports.Describe(name)
					fmt.Printf("%-14s %s\n", name, desc)
				}
				return nil
			}

			filter, err := parseReportFilter(since, until)
			if err != nil {
				return err
			}

			rs, err := client.Reports.Run(cmd.Context(), args[0], filter)
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "csv":
				return export.WriteCSV(os.Stdout, rs)
			case "table", "":
				printResultSet(rs)
				return nil
			default:
				return fmt.Errorf("unknown format %q, expected table or csv", format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&flags.dbURL, "db-url", "", "Database URL override")
	cmd.Flags().StringVar(&since, "since", "", "Earliest reported date, YYYY-MM-DD")
	cmd.Flags().StringVar(&until, "until", "", "Latest reported date (exclusive), YYYY-MM-DD")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or csv")

	return cmd
}

func parseReportFilter(since, until string) (service.ReportFilter, error) {
	var filter service.ReportFilter
	if since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return filter, fmt.Errorf("invalid --since date: %w", err)
		}
		filter.Since = t
	}
	if until != "" {
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return filter, fmt.Errorf("invalid --until date: %w", err)
		}
		filter.Until = t
	}
	return filter, nil
}

func printResultSet(rs report.ResultSet) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	header := make(table.Row, 0, len(rs.Columns()))
	for _, col := range rs.Columns() {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, row := range rs.Rows() {
		r := make(table.Row, 0, len(row))
		for _, cell := range row {
			r = append(r, cell)
		}
		t.AppendRow(r)
	}
	t.Render()
	fmt.Printf("%d rows\n", rs.Len())
}
