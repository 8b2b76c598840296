package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuslogs/crimelog/application/service"
	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/database"
	"github.com/campuslogs/crimelog/internal/testdb"
)

// reportStore seeds a handful of resolved incidents spread over two campuses
// and two months.
func reportStore(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db := testdb.New(t)

	campuses := persistence.NewCampusStore(db)
	incidents := persistence.NewIncidentStore(db)
	offenses := persistence.NewOffenseStore(db)

	up, err := campuses.FindByCode(ctx, "UP")
	if err != nil {
		t.Fatalf("find UP: %v", err)
	}
	yk, err := campuses.FindByCode(ctx, "YK")
	if err != nil {
		t.Fatalf("find YK: %v", err)
	}

	jan := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 20, 14, 0, 0, 0, time.UTC)
	seed := []incident.Incident{
		incident.NewIncident("24UP0000001", up.ID(), "Theft", jan),
		incident.NewIncident("24UP0000002", up.ID(), "Fraud", jan.Add(time.Hour)),
		incident.NewIncident("24UP0000003", up.ID(), "Assault", feb),
		incident.NewIncident("24YK0000001", yk.ID(), "Theft", feb),
	}
	for _, inc := range seed {
		stored, _, err := incidents.Insert(ctx, inc)
		if err != nil {
			t.Fatalf("insert %s: %v", inc.Number(), err)
		}
		typ, err := offenses.SaveType(ctx, incident.NewOffenseType(inc.Nature()))
		if err != nil {
			t.Fatalf("save offense type: %v", err)
		}
		if err := offenses.Link(ctx, stored.ID(), typ.ID()); err != nil {
			t.Fatalf("link offense: %v", err)
		}
	}

	return db
}

func TestReports_Names(t *testing.T) {
	reports := service.NewReports(testdb.New(t))

	names := reports.Names()
	if len(names) == 0 {
		t.Fatal("no reports registered")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	for _, name := range names {
		if _, err := reports.Describe(name); err != nil {
			t.Errorf("Describe(%q): %v", name, err)
		}
	}
}

func TestReports_UnknownName(t *testing.T) {
	reports := service.NewReports(testdb.New(t))

	_, err := reports.Run(context.Background(), "nonexistent", service.ReportFilter{})
	if !errors.Is(err, service.ErrUnknownReport) {
		t.Errorf("expected ErrUnknownReport, got %v", err)
	}
	if _, err := reports.Describe("nonexistent"); !errors.Is(err, service.ErrUnknownReport) {
		t.Errorf("Describe: expected ErrUnknownReport, got %v", err)
	}
}

func TestReports_ByCampusKeepsQuietCampuses(t *testing.T) {
	db := reportStore(t)
	reports := service.NewReports(db)

	rs, err := reports.Run(context.Background(), "by-campus", service.ReportFilter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Every canonical campus appears, even the ones with zero incidents.
	if rs.Len() != 23 {
		t.Fatalf("expected 23 rows, got %d", rs.Len())
	}

	rows := rs.Rows()
	if rows[0][0] != "UP" || rows[0][2] != "3" {
		t.Errorf("busiest campus row = %v, want UP with 3", rows[0])
	}
	if rows[1][0] != "YK" || rows[1][2] != "1" {
		t.Errorf("second row = %v, want YK with 1", rows[1])
	}
	if rows[2][2] != "0" {
		t.Errorf("quiet campuses should report 0, got %v", rows[2])
	}
}

func TestReports_TimeFilter(t *testing.T) {
	db := reportStore(t)
	reports := service.NewReports(db)

	filter := service.ReportFilter{
		Since: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	rs, err := reports.Run(context.Background(), "by-campus", filter)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Only the two February incidents survive; all 23 campuses still listed.
	if rs.Len() != 23 {
		t.Fatalf("expected 23 rows, got %d", rs.Len())
	}
	total := 0
	for _, row := range rs.Rows() {
		if row[2] == "1" {
			total++
		} else if row[2] != "0" {
			t.Errorf("unexpected count in %v", row)
		}
	}
	if total != 2 {
		t.Errorf("expected 2 campuses with one February incident, got %d", total)
	}
}

func TestReports_ByMonth(t *testing.T) {
	db := reportStore(t)
	reports := service.NewReports(db)

	rs, err := reports.Run(context.Background(), "by-month", service.ReportFilter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("expected 2 month rows, got %d", rs.Len())
	}
	rows := rs.Rows()
	if rows[0][0] != "2024-01" || rows[0][1] != "2" {
		t.Errorf("January row = %v", rows[0])
	}
	if rows[1][0] != "2024-02" || rows[1][1] != "2" {
		t.Errorf("February row = %v", rows[1])
	}
}

func TestReports_Recent(t *testing.T) {
	db := reportStore(t)
	reports := service.NewReports(db)

	rs, err := reports.Run(context.Background(), "recent", service.ReportFilter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rs.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", rs.Len())
	}
	// Newest first; empty location renders as an empty string, not NULL.
	first := rs.Rows()[0]
	if first[0] != "24UP0000003" && first[0] != "24YK0000001" {
		t.Errorf("first row should be a February incident, got %v", first)
	}
	cols := rs.Columns()
	if cols[len(cols)-1] != "location" {
		t.Errorf("last column = %q, want location", cols[len(cols)-1])
	}
	if first[len(first)-1] != "" {
		t.Errorf("missing location should render empty, got %q", first[len(first)-1])
	}
}

func TestReports_TopOffenses(t *testing.T) {
	db := reportStore(t)
	reports := service.NewReports(db)

	rs, err := reports.Run(context.Background(), "top-offenses", service.ReportFilter{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rs.Len() != 3 {
		t.Fatalf("expected 3 offense rows, got %d", rs.Len())
	}
	top := rs.Rows()[0]
	if top[0] != "Theft" || top[1] != "2" {
		t.Errorf("top offense row = %v, want Theft with 2", top)
	}
}
