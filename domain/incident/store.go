package incident

import "context"

// CampusStore persists campus reference rows.
type CampusStore interface {
	// Save upserts a campus by its canonical code.
	Save(ctx context.Context, campus Campus) (Campus, error)
	// FindByCode returns the campus with the given code, or
	// database.ErrNotFound.
	FindByCode(ctx context.Context, code string) (Campus, error)
	// All returns every campus ordered by code.
	All(ctx context.Context) ([]Campus, error)
	// CountByCode returns how many rows share the given code. More than one
	// is a resolution conflict.
	CountByCode(ctx context.Context, code string) (int64, error)
}

// LocationStore persists location reference rows.
type LocationStore interface {
	// Save upserts a location by its (campus, name) pair.
	Save(ctx context.Context, location Location) (Location, error)
	// FindByCampusAndName returns the matching location, or
	// database.ErrNotFound.
	FindByCampusAndName(ctx context.Context, campusID int64, name string) (Location, error)
	// FindByCampus returns every location owned by the given campus.
	FindByCampus(ctx context.Context, campusID int64) ([]Location, error)
}

// NatureStore persists the nature-of-incident lookup.
type NatureStore interface {
	// Save upserts a nature row by its unique text.
	Save(ctx context.Context, nature Nature) (Nature, error)
	// FindByText returns the matching nature row, or database.ErrNotFound.
	FindByText(ctx context.Context, text string) (Nature, error)
}

// IncidentStore persists resolved incidents.
type IncidentStore interface {
	// Insert stores an incident keyed by its source incident number.
	// It returns false with no error when the number already exists,
	// leaving the stored row untouched.
	Insert(ctx context.Context, inc Incident) (Incident, bool, error)
	// FindByNumber returns the incident with the given source number, or
	// database.ErrNotFound.
	FindByNumber(ctx context.Context, number string) (Incident, error)
	// Count returns the total number of stored incidents.
	Count(ctx context.Context) (int64, error)
}

// OffenseStore persists offense types and their links to incidents.
type OffenseStore interface {
	// SaveType upserts an offense type by its description text.
	SaveType(ctx context.Context, offense OffenseType) (OffenseType, error)
	// Link associates an offense type with an incident; linking the same
	// pair twice is a no-op.
	Link(ctx context.Context, incidentID, offenseID int64) error
	// TypesForIncident returns the offense types linked to an incident.
	TypesForIncident(ctx context.Context, incidentID int64) ([]OffenseType, error)
}
