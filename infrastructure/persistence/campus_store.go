package persistence

import (
	"context"
	"fmt"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/internal/database"
)

// CampusStore implements incident.CampusStore using GORM.
type CampusStore struct {
	database.Repository[incident.Campus, CampusModel]
}

// NewCampusStore creates a new CampusStore.
func NewCampusStore(db database.Database) CampusStore {
	return CampusStore{
		Repository: database.NewRepository[incident.Campus, CampusModel](db, CampusMapper{}, "campus"),
	}
}

// Save upserts a campus by its canonical code.
func (s CampusStore) Save(ctx context.Context, campus incident.Campus) (incident.Campus, error) {
	model := s.Mapper().ToModel(campus)

	if model.CampusID == 0 {
		existing, err := s.FindByCode(ctx, campus.Code())
		if err == nil {
			model.CampusID = existing.ID()
		}
	}

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return incident.Campus{}, fmt.Errorf("save campus: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindByCode returns the campus with the given code.
func (s CampusStore) FindByCode(ctx context.Context, code string) (incident.Campus, error) {
	return s.FindOne(ctx, database.NewQuery().Equal("campus_code", code))
}

// All returns every campus ordered by code.
func (s CampusStore) All(ctx context.Context) ([]incident.Campus, error) {
	return s.Find(ctx, database.NewQuery().OrderAsc("campus_code"))
}

// CountByCode returns how many campus rows share the given code.
func (s CampusStore) CountByCode(ctx context.Context, code string) (int64, error) {
	return s.Count(ctx, database.NewQuery().Equal("campus_code", code))
}
