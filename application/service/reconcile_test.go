package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/campuslogs/crimelog/application/service"
	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/infrastructure/mapping"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/config"
	"github.com/campuslogs/crimelog/internal/database"
	"github.com/campuslogs/crimelog/internal/log"
	"github.com/campuslogs/crimelog/internal/testdb"
)

func quietLogger() *log.Logger {
	return log.NewLoggerWithWriter(&strings.Builder{}, config.LogFormatJSON, "ERROR")
}

// driftedStore builds a store that looks like years of unreconciled scraping:
// the canonical seed plus duplicate campus rows with incidents and locations
// hanging off them, and a junk incident row.
func driftedStore(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db := testdb.New(t)

	campuses := persistence.NewCampusStore(db)
	locations := persistence.NewLocationStore(db)
	incidents := persistence.NewIncidentStore(db)

	hn, err := campuses.Save(ctx, incident.NewCampus("HN", "Hershey", "", "PA"))
	if err != nil {
		t.Fatalf("save HN: %v", err)
	}
	er, err := campuses.Save(ctx, incident.NewCampus("ER", "Erie (Behrend)", "", "PA"))
	if err != nil {
		t.Fatalf("save ER: %v", err)
	}
	hs, err := campuses.FindByCode(ctx, "HS")
	if err != nil {
		t.Fatalf("find HS: %v", err)
	}

	// Same-named location under both the duplicate and the canonical campus,
	// plus one location that exists only under the duplicate.
	hnLobby, err := locations.Save(ctx, incident.NewLocation(hn.ID(), "Medical Center Lobby"))
	if err != nil {
		t.Fatalf("save hn lobby: %v", err)
	}
	if _, err := locations.Save(ctx, incident.NewLocation(hs.ID(), "Medical Center Lobby")); err != nil {
		t.Fatalf("save hs lobby: %v", err)
	}
	hnGarage, err := locations.Save(ctx, incident.NewLocation(hn.ID(), "Parking Garage"))
	if err != nil {
		t.Fatalf("save hn garage: %v", err)
	}

	reported := time.Date(2023, time.June, 1, 10, 0, 0, 0, time.UTC)
	seed := []incident.Incident{
		incident.NewIncident("23HN0000001", hn.ID(), "Theft", reported).WithLocation(hnLobby.ID()),
		incident.NewIncident("23HN0000002", hn.ID(), "Fraud", reported).WithLocation(hnGarage.ID()),
		incident.NewIncident("23ER0000001", er.ID(), "Assault", reported),
		incident.NewIncident(":", hn.ID(), "", reported),
	}
	for _, inc := range seed {
		if _, _, err := incidents.Insert(ctx, inc); err != nil {
			t.Fatalf("insert %s: %v", inc.Number(), err)
		}
	}

	return db
}

func TestReconcile_FoldsDuplicatesIntoCanonicalSet(t *testing.T) {
	ctx := context.Background()
	db := driftedStore(t)
	campuses := persistence.NewCampusStore(db)
	reconcile := service.NewReconcile(db, campuses, quietLogger())

	m, err := mapping.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	summary, err := reconcile.Run(ctx, m, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := summary.CampusesMerged(); got != 2 {
		t.Errorf("CampusesMerged() = %d, want 2 (HN and ER)", got)
	}
	if summary.JunkPurged != 1 {
		t.Errorf("JunkPurged = %d, want 1", summary.JunkPurged)
	}

	all, err := campuses.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 23 {
		t.Errorf("expected exactly 23 campuses after reconciliation, got %d", len(all))
	}

	// The HN incidents now belong to HS.
	hs, err := campuses.FindByCode(ctx, "HS")
	if err != nil {
		t.Fatalf("find HS: %v", err)
	}
	incidents := persistence.NewIncidentStore(db)
	count, err := incidents.CountByCampus(ctx, hs.ID())
	if err != nil {
		t.Fatalf("CountByCampus: %v", err)
	}
	if count != 2 {
		t.Errorf("HS should own 2 incidents after the merge, got %d", count)
	}

	// The colliding location was merged, the other moved.
	locations := persistence.NewLocationStore(db)
	hsLocations, err := locations.FindByCampus(ctx, hs.ID())
	if err != nil {
		t.Fatalf("FindByCampus: %v", err)
	}
	if len(hsLocations) != 2 {
		t.Errorf("HS should own 2 locations (lobby merged, garage moved), got %d", len(hsLocations))
	}

	violations, err := persistence.CheckIntegrity(ctx, db)
	if err != nil {
		t.Fatalf("CheckIntegrity: %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("reconciled store should be consistent, got %v", violations)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := driftedStore(t)
	campuses := persistence.NewCampusStore(db)
	reconcile := service.NewReconcile(db, campuses, quietLogger())

	m, err := mapping.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	if _, err := reconcile.Run(ctx, m, false); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	incidents := persistence.NewIncidentStore(db)
	before, err := incidents.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}

	second, err := reconcile.Run(ctx, m, false)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if got := second.CampusesMerged(); got != 0 {
		t.Errorf("second run merged %d campuses, want 0", got)
	}
	if second.JunkPurged != 0 {
		t.Errorf("second run purged %d junk rows, want 0", second.JunkPurged)
	}

	after, err := incidents.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if before != after {
		t.Errorf("incident count changed on re-run: %d -> %d", before, after)
	}
}

func TestReconcile_DryRunModifiesNothing(t *testing.T) {
	ctx := context.Background()
	db := driftedStore(t)
	campuses := persistence.NewCampusStore(db)
	reconcile := service.NewReconcile(db, campuses, quietLogger())

	m, err := mapping.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	summary, err := reconcile.Run(ctx, m, true)
	if err != nil {
		t.Fatalf("dry Run: %v", err)
	}
	if !summary.DryRun {
		t.Error("summary should be marked dry-run")
	}
	if got := summary.CampusesMerged(); got != 2 {
		t.Errorf("dry run should report 2 pending merges, got %d", got)
	}
	if summary.JunkPurged != 1 {
		t.Errorf("dry run should report 1 junk row, got %d", summary.JunkPurged)
	}

	// Nothing actually changed.
	all, err := campuses.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 25 {
		t.Errorf("dry run must leave the 25 campus rows alone, got %d", len(all))
	}
	incidents := persistence.NewIncidentStore(db)
	count, err := incidents.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 4 {
		t.Errorf("dry run must leave all 4 incidents, got %d", count)
	}
}

func TestReconcile_MissingCanonicalFails(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	campuses := persistence.NewCampusStore(db)

	if _, err := campuses.Save(ctx, incident.NewCampus("XX", "Mystery", "", "PA")); err != nil {
		t.Fatalf("save XX: %v", err)
	}

	reconcile := service.NewReconcile(db, campuses, quietLogger())
	m := mapping.Mapping{Entries: []mapping.Entry{{Duplicate: "XX", Canonical: "QQ"}}}

	if _, err := reconcile.Run(ctx, m, false); err == nil {
		t.Error("merging into a nonexistent canonical campus should fail")
	}
}

func TestReconcile_InvalidMappingRejected(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	reconcile := service.NewReconcile(db, persistence.NewCampusStore(db), quietLogger())

	m := mapping.Mapping{Entries: []mapping.Entry{{Duplicate: "UP", Canonical: "UP"}}}
	if _, err := reconcile.Run(ctx, m, false); err == nil {
		t.Error("self-mapping should be rejected before any merge")
	}
}
