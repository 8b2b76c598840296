package persistence

import (
	"context"
	"fmt"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/internal/database"
	"gorm.io/gorm/clause"
)

// IncidentStore implements incident.IncidentStore using GORM.
type IncidentStore struct {
	database.Repository[incident.Incident, IncidentModel]
}

// NewIncidentStore creates a new IncidentStore.
func NewIncidentStore(db database.Database) IncidentStore {
	return IncidentStore{
		Repository: database.NewRepository[incident.Incident, IncidentModel](db, IncidentMapper{}, "incident"),
	}
}

// Insert stores an incident keyed by its source incident number. A number
// that already exists leaves the stored row untouched and returns false;
// re-ingesting a page therefore never duplicates incidents. A campus or
// location reference that does not exist fails the insert at write time.
func (s IncidentStore) Insert(ctx context.Context, inc incident.Incident) (incident.Incident, bool, error) {
	model := s.Mapper().ToModel(inc)

	result := s.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "incident_number"}},
			DoNothing: true,
		}).
		Create(&model)
	if result.Error != nil {
		return incident.Incident{}, false, fmt.Errorf("insert incident %s: %w", inc.Number(), result.Error)
	}

	if result.RowsAffected == 0 {
		existing, err := s.FindByNumber(ctx, inc.Number())
		if err != nil {
			return incident.Incident{}, false, err
		}
		return existing, false, nil
	}

	return s.Mapper().ToDomain(model), true, nil
}

// FindByNumber returns the incident with the given source number.
func (s IncidentStore) FindByNumber(ctx context.Context, number string) (incident.Incident, error) {
	return s.FindOne(ctx, database.NewQuery().Equal("incident_number", number))
}

// Count returns the total number of stored incidents.
func (s IncidentStore) Count(ctx context.Context) (int64, error) {
	return s.Repository.Count(ctx, database.NewQuery())
}

// CountByCampus returns the number of incidents referencing the given campus.
func (s IncidentStore) CountByCampus(ctx context.Context, campusID int64) (int64, error) {
	return s.Repository.Count(ctx, database.NewQuery().Equal("campus_id", campusID))
}
