package persistence

import (
	"time"

	"github.com/campuslogs/crimelog/domain/incident"
)

// CampusMapper maps between domain Campus and CampusModel.
type CampusMapper struct{}

// ToDomain converts a CampusModel to a domain Campus.
func (m CampusMapper) ToDomain(e CampusModel) incident.Campus {
	return incident.ReconstructCampus(e.CampusID, e.CampusCode, e.CampusName, e.City, e.State)
}

// ToModel converts a domain Campus to a CampusModel.
func (m CampusMapper) ToModel(c incident.Campus) CampusModel {
	return CampusModel{
		CampusID:   c.ID(),
		CampusCode: c.Code(),
		CampusName: c.Name(),
		City:       c.City(),
		State:      c.State(),
	}
}

// LocationMapper maps between domain Location and LocationModel.
type LocationMapper struct{}

// ToDomain converts a LocationModel to a domain Location.
func (m LocationMapper) ToDomain(e LocationModel) incident.Location {
	return incident.ReconstructLocation(e.LocationID, e.CampusID, e.LocationName)
}

// ToModel converts a domain Location to a LocationModel.
func (m LocationMapper) ToModel(l incident.Location) LocationModel {
	return LocationModel{
		LocationID:   l.ID(),
		CampusID:     l.CampusID(),
		LocationName: l.Name(),
	}
}

// NatureMapper maps between domain Nature and NatureModel.
type NatureMapper struct{}

// ToDomain converts a NatureModel to a domain Nature.
func (m NatureMapper) ToDomain(e NatureModel) incident.Nature {
	return incident.ReconstructNature(e.NatureID, e.NatureText)
}

// ToModel converts a domain Nature to a NatureModel.
func (m NatureMapper) ToModel(n incident.Nature) NatureModel {
	return NatureModel{
		NatureID:   n.ID(),
		NatureText: n.Text(),
	}
}

// IncidentMapper maps between domain Incident and IncidentModel.
type IncidentMapper struct{}

// ToDomain converts an IncidentModel to a domain Incident.
func (m IncidentMapper) ToDomain(e IncidentModel) incident.Incident {
	var locationID, natureID int64
	if e.LocationID != nil {
		locationID = *e.LocationID
	}
	if e.NatureID != nil {
		natureID = *e.NatureID
	}

	var occurredStart, occurredEnd time.Time
	if e.OccurredStart != nil {
		occurredStart = *e.OccurredStart
	}
	if e.OccurredEnd != nil {
		occurredEnd = *e.OccurredEnd
	}

	return incident.ReconstructIncident(
		e.ID,
		e.IncidentNumber,
		e.CampusID, locationID, natureID,
		e.NatureOfIncident,
		e.ReportedDatetime, occurredStart, occurredEnd,
	)
}

// ToModel converts a domain Incident to an IncidentModel.
func (m IncidentMapper) ToModel(i incident.Incident) IncidentModel {
	model := IncidentModel{
		ID:               i.ID(),
		IncidentNumber:   i.Number(),
		CampusID:         i.CampusID(),
		NatureOfIncident: i.Nature(),
		ReportedDatetime: i.ReportedAt(),
	}

	if i.HasLocation() {
		locationID := i.LocationID()
		model.LocationID = &locationID
	}
	if i.NatureID() != 0 {
		natureID := i.NatureID()
		model.NatureID = &natureID
	}
	if !i.OccurredStart().IsZero() {
		start := i.OccurredStart()
		model.OccurredStart = &start
	}
	if !i.OccurredEnd().IsZero() {
		end := i.OccurredEnd()
		model.OccurredEnd = &end
	}

	return model
}

// OffenseTypeMapper maps between domain OffenseType and OffenseTypeModel.
type OffenseTypeMapper struct{}

// ToDomain converts an OffenseTypeModel to a domain OffenseType.
func (m OffenseTypeMapper) ToDomain(e OffenseTypeModel) incident.OffenseType {
	return incident.ReconstructOffenseType(e.OffenseID, e.OffenseCode)
}

// ToModel converts a domain OffenseType to an OffenseTypeModel.
func (m OffenseTypeMapper) ToModel(o incident.OffenseType) OffenseTypeModel {
	return OffenseTypeModel{
		OffenseID:   o.ID(),
		OffenseCode: o.Code(),
	}
}
