package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/database"
)

// Resolver turns the free-text reference fields of a parsed record into
// stored reference rows. Matching is exact: no fuzzy matching, no
// normalization beyond whitespace trimming. Unknown campuses, locations,
// and natures are created on first sight; folding near-duplicates together
// is reconciliation's job, not resolution's.
type Resolver struct {
	campuses  incident.CampusStore
	locations incident.LocationStore
	natures   incident.NatureStore

	campusCache   map[string]incident.Campus
	locationCache map[string]incident.Location
	natureCache   map[string]incident.Nature
}

// NewResolver creates a Resolver. The caches live for the lifetime of the
// Resolver, so construct one per ingest run.
func NewResolver(campuses incident.CampusStore, locations incident.LocationStore, natures incident.NatureStore) *Resolver {
	return &Resolver{
		campuses:      campuses,
		locations:     locations,
		natures:       natures,
		campusCache:   make(map[string]incident.Campus),
		locationCache: make(map[string]incident.Location),
		natureCache:   make(map[string]incident.Nature),
	}
}

// ResolveCampus resolves a record's campus code to a campus row. The code
// embedded in the incident number wins; when the number carries none, the
// page's campus label is translated to its canonical code. A code seen for
// the first time creates a new campus row named after the page label. A code
// present more than once in the table is a conflict and fails the record.
func (r *Resolver) ResolveCampus(ctx context.Context, rec incident.Record) (incident.Campus, error) {
	code := rec.CampusCode()
	if code == "" {
		code = persistence.CampusNameToCode()[rec.CampusLabel()]
	}
	if code == "" {
		return incident.Campus{}, fmt.Errorf("record %s: %w", rec.Number(), incident.ErrUnresolvableCampus)
	}

	if campus, ok := r.campusCache[code]; ok {
		return campus, nil
	}

	count, err := r.campuses.CountByCode(ctx, code)
	if err != nil {
		return incident.Campus{}, err
	}
	if count > 1 {
		return incident.Campus{}, fmt.Errorf("campus code %s matches %d rows: %w", code, count, incident.ErrResolutionConflict)
	}

	campus, err := r.campuses.FindByCode(ctx, code)
	if errors.Is(err, database.ErrNotFound) {
		campus, err = r.campuses.Save(ctx, incident.NewCampus(code, rec.CampusLabel(), "", "PA"))
	}
	if err != nil {
		return incident.Campus{}, err
	}

	r.campusCache[code] = campus
	return campus, nil
}

// ResolveLocation resolves a location name within a campus, creating the row
// on first sight. An empty name resolves to no location.
func (r *Resolver) ResolveLocation(ctx context.Context, campusID int64, name string) (incident.Location, bool, error) {
	if name == "" {
		return incident.Location{}, false, nil
	}

	key := fmt.Sprintf("%d\x00%s", campusID, name)
	if loc, ok := r.locationCache[key]; ok {
		return loc, true, nil
	}

	loc, err := r.locations.FindByCampusAndName(ctx, campusID, name)
	if errors.Is(err, database.ErrNotFound) {
		loc, err = r.locations.Save(ctx, incident.NewLocation(campusID, name))
	}
	if err != nil {
		return incident.Location{}, false, err
	}

	r.locationCache[key] = loc
	return loc, true, nil
}

// ResolveNature resolves a nature-of-incident text, creating the row on
// first sight. An empty text resolves to no nature.
func (r *Resolver) ResolveNature(ctx context.Context, text string) (incident.Nature, bool, error) {
	if text == "" {
		return incident.Nature{}, false, nil
	}

	if nature, ok := r.natureCache[text]; ok {
		return nature, true, nil
	}

	nature, err := r.natures.FindByText(ctx, text)
	if errors.Is(err, database.ErrNotFound) {
		nature, err = r.natures.Save(ctx, incident.NewNature(text))
	}
	if err != nil {
		return incident.Nature{}, false, err
	}

	r.natureCache[text] = nature
	return nature, true, nil
}
