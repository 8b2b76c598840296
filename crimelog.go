// Package crimelog provides a library for scraping, storing, reconciling,
// and querying university daily crime logs.
//
// Basic usage:
//
//	client, err := crimelog.New(
//	    crimelog.WithSQLite(".crimelog/crimelog.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Scrape every campus
//	summary, err := client.Ingest(ctx, service.IngestOptions{})
//
//	// Fold duplicate campuses and purge junk rows
//	result, err := client.Reconcile(ctx, false)
//
//	// Run a named report
//	rs, err := client.Reports.Run(ctx, "by-campus", service.ReportFilter{})
package crimelog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/campuslogs/crimelog/application/service"
	"github.com/campuslogs/crimelog/infrastructure/fetcher"
	"github.com/campuslogs/crimelog/infrastructure/mapping"
	"github.com/campuslogs/crimelog/infrastructure/parser"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/database"
	"github.com/campuslogs/crimelog/internal/log"
)

// Client is the main entry point for the crimelog library. It owns the
// database connection and exposes the query and reconciliation services;
// ingest runs are created per call so resolution caches never outlive a run.
type Client struct {
	// Reports runs the named read-only queries.
	Reports *service.Reports

	db        database.Database
	campuses  persistence.CampusStore
	locations persistence.LocationStore
	natures   persistence.NatureStore
	incidents persistence.IncidentStore
	offenses  persistence.OffenseStore

	reconcile *service.Reconcile
	cfg       clientConfig
	logger    *log.Logger
	closed    atomic.Bool
}

// New creates a Client, opens the database, migrates the schema, and seeds
// the canonical campus rows.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.appConfig.DBURL() == "" {
		return nil, ErrNoDatabase
	}

	ctx := context.Background()
	logger := cfg.logger

	db, err := database.NewDatabase(ctx, cfg.appConfig.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	if err := persistence.Seed(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed campuses: %w", err)
	}

	campuses := persistence.NewCampusStore(db)

	return &Client{
		Reports:   service.NewReports(db),
		db:        db,
		campuses:  campuses,
		locations: persistence.NewLocationStore(db),
		natures:   persistence.NewNatureStore(db),
		incidents: persistence.NewIncidentStore(db),
		offenses:  persistence.NewOffenseStore(db),
		reconcile: service.NewReconcile(db, campuses, logger),
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Ingest scrapes the configured crime log site and stores what it finds.
// Each call builds a fresh fetcher and resolver.
func (c *Client) Ingest(ctx context.Context, opts service.IngestOptions) (service.RunSummary, error) {
	if c.closed.Load() {
		return service.RunSummary{}, ErrClosed
	}

	resolver := service.NewResolver(c.campuses, c.locations, c.natures)
	ingest := service.NewIngest(
		fetcher.NewFetcher(c.cfg.appConfig, c.logger),
		parser.NewParser(),
		resolver,
		c.incidents,
		c.offenses,
		c.cfg.appConfig,
		c.logger,
	)
	return ingest.Run(ctx, opts)
}

// Reconcile applies the configured campus mapping: the file named in the
// config when present, the embedded default otherwise.
func (c *Client) Reconcile(ctx context.Context, dryRun bool) (service.ReconcileSummary, error) {
	if c.closed.Load() {
		return service.ReconcileSummary{}, ErrClosed
	}

	m, err := c.loadMapping()
	if err != nil {
		return service.ReconcileSummary{}, err
	}
	return c.reconcile.Run(ctx, m, dryRun)
}

// ReconcileWith applies an explicit mapping artifact.
func (c *Client) ReconcileWith(ctx context.Context, m mapping.Mapping, dryRun bool) (service.ReconcileSummary, error) {
	if c.closed.Load() {
		return service.ReconcileSummary{}, ErrClosed
	}
	return c.reconcile.Run(ctx, m, dryRun)
}

func (c *Client) loadMapping() (mapping.Mapping, error) {
	if path := c.cfg.appConfig.MappingFile(); path != "" {
		return mapping.Load(path)
	}
	return mapping.Default()
}

// Database returns the underlying database handle for export and testing.
func (c *Client) Database() database.Database {
	return c.db
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger {
	return c.logger
}

// Close releases the database connection. Close is idempotent.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.db.Close()
}
