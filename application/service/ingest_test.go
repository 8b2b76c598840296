package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campuslogs/crimelog/application/service"
	"github.com/campuslogs/crimelog/infrastructure/fetcher"
	"github.com/campuslogs/crimelog/infrastructure/parser"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/config"
	"github.com/campuslogs/crimelog/internal/database"
	"github.com/campuslogs/crimelog/internal/testdb"
)

const logPageHTML = `
<html><body>
<div class="view-content">
  <div class="views-row">
    <span class="field--name-title">24UP1234567</span>
    <div class="field--name-field-reported"><div class="field__item">January 2, 2024 - 3:15pm</div></div>
    <div class="field--name-field-nature-of-incident1"><div class="field__item">Theft</div></div>
    <div class="field--name-field-offenses1"><div class="field__item">Theft of property / Criminal mischief</div></div>
    <div class="field--name-field-location"><div class="field__item">Beaver Stadium</div></div>
  </div>
  <div class="views-row">
    <span class="field--name-title">24UP1234568</span>
    <div class="field--name-field-reported"><div class="field__item">January 3, 2024 - 9:00am</div></div>
    <div class="field--name-field-nature-of-incident1"><div class="field__item">Fraud</div></div>
  </div>
  <div class="views-row">
    <span class="field--name-title">:</span>
    <div class="field--name-field-reported"><div class="field__item">January 2, 2024 - 4:00pm</div></div>
  </div>
</div>
</body></html>`

// emptyPageHTML has no incident blocks but is long enough to pass the
// truncated-response check.
var emptyPageHTML = "<html><body><p>no results</p>" + strings.Repeat("<!-- padding -->", 10) + "</body></html>"

func newIngest(db database.Database, baseURL string) *service.Ingest {
	cfg := config.NewAppConfig().
		WithBaseURL(baseURL).
		WithFetch(config.NewFetchConfig().
			WithTimeout(2 * time.Second).
			WithMaxRetries(1).
			WithInitialDelay(time.Millisecond).
			WithRequestInterval(0).
			WithMaxPages(5).
			WithEmptyPageLimit(1))
	logger := quietLogger()
	return service.NewIngest(
		fetcher.NewFetcher(cfg, logger),
		parser.NewParser(),
		newResolver(db),
		persistence.NewIncidentStore(db),
		persistence.NewOffenseStore(db),
		cfg,
		logger,
	)
}

// logServer serves the fixture page for page 0 and empty pages after that.
func logServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "0" {
			_, _ = w.Write([]byte(logPageHTML))
			return
		}
		_, _ = w.Write([]byte(emptyPageHTML))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngest_SingleCampus(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	server := logServer(t)

	ingest := newIngest(db, server.URL)
	summary, err := ingest.Run(ctx, service.IngestOptions{CampusFilter: "Univ Park"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.PagesFetched != 2 {
		t.Errorf("PagesFetched = %d, want 2 (content page + empty page)", summary.PagesFetched)
	}
	if summary.Parsed != 2 {
		t.Errorf("Parsed = %d, want 2", summary.Parsed)
	}
	if summary.Inserted != 2 {
		t.Errorf("Inserted = %d, want 2", summary.Inserted)
	}
	if summary.JunkDropped != 1 {
		t.Errorf("JunkDropped = %d, want 1", summary.JunkDropped)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}

	incidents := persistence.NewIncidentStore(db)
	count, err := incidents.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("stored %d incidents, want 2", count)
	}

	// The first incident got its references resolved and offenses linked.
	stored, err := incidents.FindByNumber(ctx, "24UP1234567")
	if err != nil {
		t.Fatalf("FindByNumber: %v", err)
	}
	if !stored.HasLocation() {
		t.Error("incident should reference the resolved location")
	}
	offenses := persistence.NewOffenseStore(db)
	linked, err := offenses.TypesForIncident(ctx, stored.ID())
	if err != nil {
		t.Fatalf("TypesForIncident: %v", err)
	}
	if len(linked) != 2 {
		t.Errorf("expected 2 linked offenses, got %d", len(linked))
	}

	// The second incident had no location field; that is fine.
	bare, err := incidents.FindByNumber(ctx, "24UP1234568")
	if err != nil {
		t.Fatalf("FindByNumber: %v", err)
	}
	if bare.HasLocation() {
		t.Error("incident without a location field should store none")
	}
}

func TestIngest_RerunCountsDuplicates(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	server := logServer(t)
	opts := service.IngestOptions{CampusFilter: "Univ Park"}

	if _, err := newIngest(db, server.URL).Run(ctx, opts); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	summary, err := newIngest(db, server.URL).Run(ctx, opts)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary.Inserted != 0 {
		t.Errorf("Inserted = %d, want 0 on re-run", summary.Inserted)
	}
	if summary.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", summary.Duplicates)
	}

	count, err := persistence.NewIncidentStore(db).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("re-run changed incident count to %d", count)
	}
}

func TestIngest_FetchFailureAbortsCampusOnly(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	// A broken site fails every campus, but the run itself still completes.
	summary, err := newIngest(db, server.URL).Run(ctx, service.IngestOptions{})
	if err != nil {
		t.Fatalf("Run should absorb per-campus failures: %v", err)
	}
	if summary.Inserted != 0 {
		t.Errorf("Inserted = %d, want 0", summary.Inserted)
	}
}

func TestIngest_CancelledContext(t *testing.T) {
	db := testdb.New(t)
	server := logServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newIngest(db, server.URL).Run(ctx, service.IngestOptions{}); err == nil {
		t.Error("cancelled context should abort the run")
	}
}
