// Package persistence provides database storage implementations.
package persistence

import "time"

// CampusModel is the GORM model for the campuses table.
type CampusModel struct {
	CampusID   int64  `gorm:"column:campus_id;primaryKey;autoIncrement"`
	CampusCode string `gorm:"column:campus_code;uniqueIndex;not null"`
	CampusName string `gorm:"column:campus_name;not null"`
	City       string `gorm:"column:city"`
	State      string `gorm:"column:state"`
}

// TableName returns the database table name.
func (CampusModel) TableName() string { return "campuses" }

// LocationModel is the GORM model for the locations table. Identity is the
// (campus, location text) pair.
type LocationModel struct {
	LocationID   int64        `gorm:"column:location_id;primaryKey;autoIncrement"`
	CampusID     int64        `gorm:"column:campus_id;not null;uniqueIndex:idx_locations_campus_name"`
	LocationName string       `gorm:"column:location_name;not null;uniqueIndex:idx_locations_campus_name"`
	Campus       *CampusModel `gorm:"foreignKey:CampusID;references:CampusID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the database table name.
func (LocationModel) TableName() string { return "locations" }

// NatureModel is the GORM model for the natures lookup table.
type NatureModel struct {
	NatureID   int64  `gorm:"column:nature_id;primaryKey;autoIncrement"`
	NatureText string `gorm:"column:nature_text;uniqueIndex;not null"`
}

// TableName returns the database table name.
func (NatureModel) TableName() string { return "natures" }

// IncidentModel is the GORM model for the incidents table. The deletes of
// duplicate campuses are RESTRICTed so reconciliation must re-point
// incidents before removing a campus row.
type IncidentModel struct {
	ID               int64          `gorm:"column:id;primaryKey;autoIncrement"`
	IncidentNumber   string         `gorm:"column:incident_number;uniqueIndex;not null"`
	CampusID         int64          `gorm:"column:campus_id;not null"`
	LocationID       *int64         `gorm:"column:location_id"`
	NatureID         *int64         `gorm:"column:nature_id"`
	NatureOfIncident string         `gorm:"column:nature_of_incident"`
	ReportedDatetime time.Time      `gorm:"column:reported_datetime;index"`
	OccurredStart    *time.Time     `gorm:"column:occurred_start"`
	OccurredEnd      *time.Time     `gorm:"column:occurred_end"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	Campus           *CampusModel   `gorm:"foreignKey:CampusID;references:CampusID;constraint:OnDelete:RESTRICT"`
	Location         *LocationModel `gorm:"foreignKey:LocationID;references:LocationID;constraint:OnDelete:RESTRICT"`
	Nature           *NatureModel   `gorm:"foreignKey:NatureID;references:NatureID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the database table name.
func (IncidentModel) TableName() string { return "incidents" }

// OffenseTypeModel is the GORM model for the offense_types table.
type OffenseTypeModel struct {
	OffenseID   int64  `gorm:"column:offense_id;primaryKey;autoIncrement"`
	OffenseCode string `gorm:"column:offense_code;uniqueIndex;not null"`
}

// TableName returns the database table name.
func (OffenseTypeModel) TableName() string { return "offense_types" }

// IncidentOffenseModel links incidents to offense types many-to-many.
type IncidentOffenseModel struct {
	IncidentID int64             `gorm:"column:incident_id;primaryKey;autoIncrement:false"`
	OffenseID  int64             `gorm:"column:offense_id;primaryKey;autoIncrement:false"`
	Incident   *IncidentModel    `gorm:"foreignKey:IncidentID;references:ID;constraint:OnDelete:CASCADE"`
	Offense    *OffenseTypeModel `gorm:"foreignKey:OffenseID;references:OffenseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name.
func (IncidentOffenseModel) TableName() string { return "incident_offenses" }
