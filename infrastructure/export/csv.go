// Package export serializes query results and whole tables to CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/campuslogs/crimelog/domain/report"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/database"
)

// WriteCSV writes a result set to w as CSV, header row first.
func WriteCSV(w io.Writer, rs report.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rs.Rows() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes a result set to the named file, creating parent
// directories as needed.
func WriteCSVFile(path string, rs report.ResultSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, rs); err != nil {
		return err
	}
	return f.Close()
}

// exportTables lists the tables dumped by ExportTables, in dump order.
var exportTables = []string{
	"campuses",
	"locations",
	"natures",
	"incidents",
	"offense_types",
	"incident_offenses",
}

// ExportTables dumps every table to a CSV file named after it under dir.
// It returns the paths written.
func ExportTables(ctx context.Context, db database.Database, dir string) ([]string, error) {
	var paths []string
	for _, table := range exportTables {
		rs, err := dumpTable(ctx, db, table)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, table+".csv")
		if err := WriteCSVFile(path, rs); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func dumpTable(ctx context.Context, db database.Database, table string) (report.ResultSet, error) {
	rows, err := db.Session(ctx).Table(table).Rows()
	if err != nil {
		return report.ResultSet{}, fmt.Errorf("dump table %s: %w", table, err)
	}
	defer rows.Close()

	rs, err := persistence.ScanResultSet(rows)
	if err != nil {
		return report.ResultSet{}, fmt.Errorf("dump table %s: %w", table, err)
	}
	return rs, nil
}
