package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/campuslogs/crimelog/domain/report"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/database"
)

// ErrUnknownReport indicates a report name that is not registered.
var ErrUnknownReport = fmt.Errorf("unknown report")

// ReportFilter bounds a report by reported time. Zero times mean unbounded.
type ReportFilter struct {
	Since time.Time
	Until time.Time
}

// reportQuery is one named report: a SQL template with optional time bounds
// spliced in at the %s marker. Bounds normally form a WHERE clause; reports
// whose template marks boundsOnJoin extend a LEFT JOIN condition instead, so
// unmatched left-side rows survive the filter.
type reportQuery struct {
	description  string
	sql          string
	timeColumn   string
	boundsOnJoin bool
}

// reportCatalog is the set of named reports served by the CLI and the API.
var reportCatalog = map[string]reportQuery{
	"by-campus": {
		description: "incident counts per campus",
		sql: `SELECT c.campus_code, c.campus_name, COUNT(i.id) AS incidents
		      FROM campuses c
		      LEFT JOIN incidents i ON i.campus_id = c.campus_id %s
		      GROUP BY c.campus_id
		      ORDER BY incidents DESC, c.campus_code`,
		timeColumn:   "i.reported_datetime",
		boundsOnJoin: true,
	},
	"top-offenses": {
		description: "most frequent offense types",
		sql: `SELECT o.offense_code, COUNT(io.incident_id) AS occurrences
		      FROM offense_types o
		      JOIN incident_offenses io ON io.offense_id = o.offense_id
		      JOIN incidents i ON i.id = io.incident_id %s
		      GROUP BY o.offense_id
		      ORDER BY occurrences DESC, o.offense_code
		      LIMIT 25`,
		timeColumn: "i.reported_datetime",
	},
	"by-month": {
		description: "incident counts per month",
		sql: `SELECT {month} AS month, COUNT(*) AS incidents
		      FROM incidents i %s
		      GROUP BY month
		      ORDER BY month`,
		timeColumn: "i.reported_datetime",
	},
	"recent": {
		description: "most recently reported incidents",
		sql: `SELECT i.incident_number, c.campus_code, i.reported_datetime,
		             i.nature_of_incident, COALESCE(l.location_name, '') AS location
		      FROM incidents i
		      JOIN campuses c ON c.campus_id = i.campus_id
		      LEFT JOIN locations l ON l.location_id = i.location_id %s
		      ORDER BY i.reported_datetime DESC
		      LIMIT 50`,
		timeColumn: "i.reported_datetime",
	},
	"full": {
		description: "every incident with resolved references",
		sql: `SELECT i.incident_number, c.campus_code, c.campus_name,
		             COALESCE(l.location_name, '') AS location,
		             i.nature_of_incident, i.reported_datetime,
		             i.occurred_start, i.occurred_end
		      FROM incidents i
		      JOIN campuses c ON c.campus_id = i.campus_id
		      LEFT JOIN locations l ON l.location_id = i.location_id %s
		      ORDER BY i.reported_datetime DESC, i.incident_number`,
		timeColumn: "i.reported_datetime",
	},
}

// Reports runs the named read-only queries backing the report CLI command
// and the HTTP API.
type Reports struct {
	db database.Database
}

// NewReports creates a Reports service.
func NewReports(db database.Database) *Reports {
	return &Reports{db: db}
}

// Names returns the registered report names, sorted.
func (r *Reports) Names() []string {
	names := make([]string, 0, len(reportCatalog))
	for name := range reportCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of a report.
func (r *Reports) Describe(name string) (string, error) {
	q, ok := reportCatalog[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	return q.description, nil
}

// Run executes a named report and returns its result set.
func (r *Reports) Run(ctx context.Context, name string, filter ReportFilter) (report.ResultSet, error) {
	q, ok := reportCatalog[name]
	if !ok {
		return report.ResultSet{}, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}

	bounds, args := timeBounds(q.timeColumn, filter)
	fragment := ""
	if bounds != "" {
		if q.boundsOnJoin {
			fragment = bounds
		} else {
			fragment = "WHERE 1=1" + bounds
		}
	}
	sql := fmt.Sprintf(q.sql, fragment)
	sql = strings.ReplaceAll(sql, "{month}", r.monthExpr())

	rows, err := r.db.Session(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return report.ResultSet{}, fmt.Errorf("report %s: %w", name, err)
	}
	defer rows.Close()

	rs, err := persistence.ScanResultSet(rows)
	if err != nil {
		return report.ResultSet{}, fmt.Errorf("report %s: %w", name, err)
	}
	return rs, nil
}

// monthExpr renders a reported month as YYYY-MM in the connected dialect.
func (r *Reports) monthExpr() string {
	if r.db.IsPostgres() {
		return "to_char(i.reported_datetime, 'YYYY-MM')"
	}
	return "strftime('%Y-%m', i.reported_datetime)"
}

// timeBounds renders the reported-time bounds as AND-prefixed conditions.
func timeBounds(column string, filter ReportFilter) (string, []any) {
	var clauses string
	var args []any
	if !filter.Since.IsZero() {
		clauses += fmt.Sprintf(" AND %s >= ?", column)
		args = append(args, filter.Since)
	}
	if !filter.Until.IsZero() {
		clauses += fmt.Sprintf(" AND %s < ?", column)
		args = append(args, filter.Until)
	}
	return clauses, args
}
