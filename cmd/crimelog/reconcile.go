package main

import (
	"fmt"
	"os"

	"github.com/campuslogs/crimelog/application/service"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	var (
		flags  commonFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Fold duplicate campus rows into their canonical equivalents",
		Long: `Apply the campus code mapping: re-point incidents and locations from
duplicate campus rows to the canonical ones, delete the duplicates, purge
junk incidents, and verify referential integrity. Safe to re-run; a
reconciled store is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(flags)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.Reconcile(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			printReconcileSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&flags.dbURL, "db-url", "", "Database URL override")
	cmd.Flags().StringVar(&flags.mappingFile, "mapping", "", "YAML mapping file (default: embedded mapping)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without modifying the store")

	return cmd
}

func printReconcileSummary(s service.ReconcileSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Duplicate", "Canonical", "Applied", "Incidents", "Locations moved", "Locations merged"})
	for _, m := range s.Merges {
		t.AppendRow(table.Row{
			m.DuplicateCode, m.CanonicalCode, m.Applied,
			m.IncidentsRepointed, m.LocationsRepointed, m.LocationsMerged,
		})
	}
	t.Render()

	verb := "purged"
	if s.DryRun {
		verb = "would purge"
		fmt.Println("dry run: nothing was modified")
	}
	fmt.Printf("junk incidents %s: %d\n", verb, s.JunkPurged)
}
