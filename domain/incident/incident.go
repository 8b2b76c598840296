package incident

import "time"

// Incident is a resolved crime log entry. The source-provided incident number
// is the natural key; campus and location identifiers reference reference
// rows created during resolution. Incidents are immutable after creation
// except for the campus/location re-pointing done by reconciliation.
type Incident struct {
	id            int64
	number        string
	campusID      int64
	locationID    int64 // 0 when the source row carried no location
	natureID      int64 // 0 when the source row carried no nature text
	nature        string
	reportedAt    time.Time
	occurredStart time.Time
	occurredEnd   time.Time
}

// NewIncident creates a new Incident that has not been persisted yet.
func NewIncident(number string, campusID int64, nature string, reportedAt time.Time) Incident {
	return Incident{
		number:     number,
		campusID:   campusID,
		nature:     nature,
		reportedAt: reportedAt,
	}
}

// ReconstructIncident recreates an Incident from persisted state.
func ReconstructIncident(
	id int64,
	number string,
	campusID, locationID, natureID int64,
	nature string,
	reportedAt, occurredStart, occurredEnd time.Time,
) Incident {
	return Incident{
		id:            id,
		number:        number,
		campusID:      campusID,
		locationID:    locationID,
		natureID:      natureID,
		nature:        nature,
		reportedAt:    reportedAt,
		occurredStart: occurredStart,
		occurredEnd:   occurredEnd,
	}
}

// ID returns the database identifier (0 for unsaved incidents).
func (i Incident) ID() int64 { return i.id }

// Number returns the source-provided incident number.
func (i Incident) Number() string { return i.number }

// CampusID returns the campus reference.
func (i Incident) CampusID() int64 { return i.campusID }

// LocationID returns the location reference, or 0 if none.
func (i Incident) LocationID() int64 { return i.locationID }

// HasLocation reports whether a location was resolved for this incident.
func (i Incident) HasLocation() bool { return i.locationID != 0 }

// NatureID returns the nature lookup reference, or 0 if none.
func (i Incident) NatureID() int64 { return i.natureID }

// Nature returns the nature-of-incident text as reported.
func (i Incident) Nature() string { return i.nature }

// ReportedAt returns the reported timestamp.
func (i Incident) ReportedAt() time.Time { return i.reportedAt }

// OccurredStart returns the start of the occurred range (zero if unknown).
func (i Incident) OccurredStart() time.Time { return i.occurredStart }

// OccurredEnd returns the end of the occurred range (zero if the source gave
// a single occurred time or none at all).
func (i Incident) OccurredEnd() time.Time { return i.occurredEnd }

// WithID returns a copy with the given database identifier.
func (i Incident) WithID(id int64) Incident {
	i.id = id
	return i
}

// WithLocation returns a copy referencing the given location.
func (i Incident) WithLocation(locationID int64) Incident {
	i.locationID = locationID
	return i
}

// WithNatureID returns a copy referencing the given nature lookup row.
func (i Incident) WithNatureID(natureID int64) Incident {
	i.natureID = natureID
	return i
}

// WithOccurred returns a copy with the given occurred range.
func (i Incident) WithOccurred(start, end time.Time) Incident {
	i.occurredStart = start
	i.occurredEnd = end
	return i
}

// WithCampusID returns a copy re-pointed at another campus.
func (i Incident) WithCampusID(campusID int64) Incident {
	i.campusID = campusID
	return i
}
