package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/internal/database"
	"gorm.io/gorm/clause"
)

// OffenseStore implements incident.OffenseStore using GORM.
type OffenseStore struct {
	database.Repository[incident.OffenseType, OffenseTypeModel]
}

// NewOffenseStore creates a new OffenseStore.
func NewOffenseStore(db database.Database) OffenseStore {
	return OffenseStore{
		Repository: database.NewRepository[incident.OffenseType, OffenseTypeModel](db, OffenseTypeMapper{}, "offense type"),
	}
}

// SaveType upserts an offense type by its description text.
func (s OffenseStore) SaveType(ctx context.Context, offense incident.OffenseType) (incident.OffenseType, error) {
	model := s.Mapper().ToModel(offense)

	if model.OffenseID == 0 {
		existing, err := s.FindByCode(ctx, offense.Code())
		if err == nil {
			return existing, nil
		} else if !errors.Is(err, database.ErrNotFound) {
			return incident.OffenseType{}, err
		}
	}

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return incident.OffenseType{}, fmt.Errorf("save offense type: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindByCode returns the offense type with the given description text.
func (s OffenseStore) FindByCode(ctx context.Context, code string) (incident.OffenseType, error) {
	return s.FindOne(ctx, database.NewQuery().Equal("offense_code", code))
}

// Link associates an offense type with an incident. Linking an existing pair
// is a no-op.
func (s OffenseStore) Link(ctx context.Context, incidentID, offenseID int64) error {
	link := IncidentOffenseModel{
		IncidentID: incidentID,
		OffenseID:  offenseID,
	}
	result := s.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link)
	if result.Error != nil {
		return fmt.Errorf("link incident %d to offense %d: %w", incidentID, offenseID, result.Error)
	}
	return nil
}

// TypesForIncident returns the offense types linked to an incident.
func (s OffenseStore) TypesForIncident(ctx context.Context, incidentID int64) ([]incident.OffenseType, error) {
	var models []OffenseTypeModel
	result := s.DB(ctx).
		Table("offense_types").
		Joins("JOIN incident_offenses io ON io.offense_id = offense_types.offense_id").
		Where("io.incident_id = ?", incidentID).
		Order("offense_types.offense_code ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("offense types for incident %d: %w", incidentID, result.Error)
	}

	types := make([]incident.OffenseType, len(models))
	for i, m := range models {
		types[i] = s.Mapper().ToDomain(m)
	}
	return types, nil
}
