// Package incident holds the domain model for campus crime log records:
// campuses, locations, incidents, offense types, and the parsed page records
// they are resolved from.
package incident

// Campus represents a university campus reference row. The campus code is the
// canonical identity; exactly one row should exist per real-world campus once
// reconciliation has run.
type Campus struct {
	id    int64
	code  string
	name  string
	city  string
	state string
}

// NewCampus creates a new Campus that has not been persisted yet.
func NewCampus(code, name, city, state string) Campus {
	return Campus{
		code:  code,
		name:  name,
		city:  city,
		state: state,
	}
}

// ReconstructCampus recreates a Campus from persisted state.
func ReconstructCampus(id int64, code, name, city, state string) Campus {
	return Campus{
		id:    id,
		code:  code,
		name:  name,
		city:  city,
		state: state,
	}
}

// ID returns the database identifier (0 for unsaved campuses).
func (c Campus) ID() int64 { return c.id }

// Code returns the canonical campus code (e.g. "UP").
func (c Campus) Code() string { return c.code }

// Name returns the campus display name.
func (c Campus) Name() string { return c.name }

// City returns the campus city.
func (c Campus) City() string { return c.city }

// State returns the campus state.
func (c Campus) State() string { return c.state }

// WithID returns a copy with the given database identifier.
func (c Campus) WithID(id int64) Campus {
	c.id = id
	return c
}

// Equal returns true if two Campus values denote the same row.
func (c Campus) Equal(other Campus) bool {
	return c.id == other.id && c.code == other.code
}
