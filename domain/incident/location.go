package incident

// Location represents a free-text location within a campus. Identity is the
// (campus, location text) pair.
type Location struct {
	id       int64
	campusID int64
	name     string
}

// NewLocation creates a new Location that has not been persisted yet.
func NewLocation(campusID int64, name string) Location {
	return Location{
		campusID: campusID,
		name:     name,
	}
}

// ReconstructLocation recreates a Location from persisted state.
func ReconstructLocation(id, campusID int64, name string) Location {
	return Location{
		id:       id,
		campusID: campusID,
		name:     name,
	}
}

// ID returns the database identifier (0 for unsaved locations).
func (l Location) ID() int64 { return l.id }

// CampusID returns the owning campus identifier.
func (l Location) CampusID() int64 { return l.campusID }

// Name returns the free-text location name.
func (l Location) Name() string { return l.name }

// WithID returns a copy with the given database identifier.
func (l Location) WithID(id int64) Location {
	l.id = id
	return l
}

// WithCampusID returns a copy re-pointed at another campus.
func (l Location) WithCampusID(campusID int64) Location {
	l.campusID = campusID
	return l
}
