package service

import (
	"context"
	"sort"
	"time"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/infrastructure/fetcher"
	"github.com/campuslogs/crimelog/infrastructure/parser"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/config"
	"github.com/campuslogs/crimelog/internal/log"
)

// RunSummary tallies what one ingest run did.
type RunSummary struct {
	PagesFetched int
	Parsed       int
	JunkDropped  int
	Inserted     int
	Duplicates   int
	Failed       int
	ParseErrors  int
}

// Add merges another summary into this one.
func (s *RunSummary) Add(other RunSummary) {
	s.PagesFetched += other.PagesFetched
	s.Parsed += other.Parsed
	s.JunkDropped += other.JunkDropped
	s.Inserted += other.Inserted
	s.Duplicates += other.Duplicates
	s.Failed += other.Failed
	s.ParseErrors += other.ParseErrors
}

// IngestOptions narrows an ingest run. Zero values mean "everything":
// all campuses, no date bounds.
type IngestOptions struct {
	// CampusFilter limits the run to one campus page filter value
	// (e.g. "University Park").
	CampusFilter string
	// StartDate and EndDate bound the reported date, formatted YYYY-MM-DD.
	StartDate string
	EndDate   string
}

// Ingest drives the scrape pipeline: fetch listing pages per campus, parse
// them, resolve references, and store incidents. A failed record never
// aborts the run; it is counted and logged.
type Ingest struct {
	fetcher   *fetcher.Fetcher
	parser    parser.Parser
	resolver  *Resolver
	incidents incident.IncidentStore
	offenses  incident.OffenseStore
	fetchCfg  config.FetchConfig
	logger    *log.Logger
}

// NewIngest creates an Ingest service.
func NewIngest(
	f *fetcher.Fetcher,
	p parser.Parser,
	resolver *Resolver,
	incidents incident.IncidentStore,
	offenses incident.OffenseStore,
	cfg config.AppConfig,
	logger *log.Logger,
) *Ingest {
	return &Ingest{
		fetcher:   f,
		parser:    p,
		resolver:  resolver,
		incidents: incidents,
		offenses:  offenses,
		fetchCfg:  cfg.Fetch(),
		logger:    logger.With("component", "ingest"),
	}
}

// Run scrapes every campus page filter (or the single one named in opts)
// and returns the combined summary. Per-campus failures are logged and do
// not stop the remaining campuses.
func (s *Ingest) Run(ctx context.Context, opts IngestOptions) (RunSummary, error) {
	filters := campusFilters(opts.CampusFilter)

	var total RunSummary
	for i, filter := range filters {
		if i > 0 {
			if err := s.fetcher.Pause(ctx); err != nil {
				return total, err
			}
		}
		summary, err := s.runCampus(ctx, filter, opts)
		total.Add(summary)
		if err != nil {
			if ctx.Err() != nil {
				return total, err
			}
			s.logger.Error("campus ingest failed", "campus", filter, "error", err)
		}
	}
	return total, nil
}

// runCampus pages through one campus's listing until the configured number
// of consecutive empty pages, or the page cap, is reached.
func (s *Ingest) runCampus(ctx context.Context, filter string, opts IngestOptions) (RunSummary, error) {
	// The site filters by a short page value ("Univ Park"); records are
	// labeled with the campus display name so the name-to-code fallback in
	// resolution works.
	label := persistence.CampusPageFilters()[filter]
	if label == "" {
		label = filter
	}

	var summary RunSummary
	consecutiveEmpty := 0

	for page := 0; page < s.fetchCfg.MaxPages(); page++ {
		if page > 0 {
			if err := s.fetcher.Pause(ctx); err != nil {
				return summary, err
			}
		}

		html, err := s.fetcher.FetchPage(ctx, fetcher.PageRequest{
			CampusFilter: filter,
			Page:         page,
			StartDate:    opts.StartDate,
			EndDate:      opts.EndDate,
		})
		if err != nil {
			return summary, err
		}
		summary.PagesFetched++

		result, err := s.parser.ParsePage(html, label)
		if err != nil {
			return summary, err
		}

		summary.Parsed += len(result.Records)
		summary.JunkDropped += result.JunkDropped
		summary.ParseErrors += len(result.Errors)
		for _, perr := range result.Errors {
			s.logger.Warn("malformed incident block", "campus", label, "row", perr.Row, "reason", perr.Reason)
		}

		if result.Empty() {
			consecutiveEmpty++
			if consecutiveEmpty >= s.fetchCfg.EmptyPageLimit() {
				break
			}
			continue
		}
		consecutiveEmpty = 0

		for _, rec := range result.Records {
			if err := s.storeRecord(ctx, rec, &summary); err != nil {
				summary.Failed++
				s.logger.Warn("record failed", "incident", rec.Number(), "error", err)
			}
		}
	}

	s.logger.Info("campus ingested",
		"campus", filter,
		"pages", summary.PagesFetched,
		"inserted", summary.Inserted,
		"duplicates", summary.Duplicates,
		"failed", summary.Failed)
	return summary, nil
}

// storeRecord resolves one parsed record and inserts it with its offense
// links. Duplicate incident numbers are counted, not errors.
func (s *Ingest) storeRecord(ctx context.Context, rec incident.Record, summary *RunSummary) error {
	campus, err := s.resolver.ResolveCampus(ctx, rec)
	if err != nil {
		return err
	}

	reportedAt, err := incident.ParseReportedTime(rec.Reported())
	if err != nil {
		return err
	}

	inc := incident.NewIncident(rec.Number(), campus.ID(), rec.Nature(), reportedAt)

	if loc, ok, err := s.resolver.ResolveLocation(ctx, campus.ID(), rec.Location()); err != nil {
		return err
	} else if ok {
		inc = inc.WithLocation(loc.ID())
	}

	if nature, ok, err := s.resolver.ResolveNature(ctx, rec.Nature()); err != nil {
		return err
	} else if ok {
		inc = inc.WithNatureID(nature.ID())
	}

	inc = inc.WithOccurred(parseOccurred(rec.OccurredStart()), parseOccurred(rec.OccurredEnd()))

	stored, created, err := s.incidents.Insert(ctx, inc)
	if err != nil {
		return err
	}
	if !created {
		summary.Duplicates++
		return nil
	}
	summary.Inserted++

	for _, offense := range rec.Offenses() {
		ot, err := s.offenses.SaveType(ctx, incident.NewOffenseType(offense))
		if err != nil {
			return err
		}
		if err := s.offenses.Link(ctx, stored.ID(), ot.ID()); err != nil {
			return err
		}
	}
	return nil
}

// parseOccurred parses an occurred timestamp, returning the zero time for
// blank or unparseable text; occurred times are best-effort on the source
// site and never fail a record.
func parseOccurred(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := incident.ParseReportedTime(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// campusFilters returns the page filter values to scrape, in stable order.
func campusFilters(only string) []string {
	if only != "" {
		return []string{only}
	}
	filters := make([]string, 0, len(persistence.CampusPageFilters()))
	for filter := range persistence.CampusPageFilters() {
		filters = append(filters, filter)
	}
	sort.Strings(filters)
	return filters
}
