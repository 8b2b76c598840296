package persistence

import (
	"database/sql"
	"fmt"

	"github.com/campuslogs/crimelog/domain/report"
)

// ScanResultSet drains sql.Rows into a string-valued result set, rendering
// NULL as the empty string. The caller retains ownership of rows and should
// still close them.
func ScanResultSet(rows *sql.Rows) (report.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return report.ResultSet{}, fmt.Errorf("read columns: %w", err)
	}

	rs := report.NewResultSet(columns)
	values := make([]sql.NullString, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return report.ResultSet{}, fmt.Errorf("scan row: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		rs = rs.WithRow(row...)
	}
	if err := rows.Err(); err != nil {
		return report.ResultSet{}, fmt.Errorf("iterate rows: %w", err)
	}
	return rs, nil
}
