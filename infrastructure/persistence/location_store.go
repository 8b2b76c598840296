package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/internal/database"
)

// LocationStore implements incident.LocationStore using GORM.
type LocationStore struct {
	database.Repository[incident.Location, LocationModel]
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(db database.Database) LocationStore {
	return LocationStore{
		Repository: database.NewRepository[incident.Location, LocationModel](db, LocationMapper{}, "location"),
	}
}

// Save upserts a location by its (campus, name) pair.
func (s LocationStore) Save(ctx context.Context, location incident.Location) (incident.Location, error) {
	model := s.Mapper().ToModel(location)

	if model.LocationID == 0 {
		existing, err := s.FindByCampusAndName(ctx, location.CampusID(), location.Name())
		if err == nil {
			model.LocationID = existing.ID()
		} else if !errors.Is(err, database.ErrNotFound) {
			return incident.Location{}, err
		}
	}

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return incident.Location{}, fmt.Errorf("save location: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindByCampusAndName returns the location matching the (campus, name) pair.
func (s LocationStore) FindByCampusAndName(ctx context.Context, campusID int64, name string) (incident.Location, error) {
	return s.FindOne(ctx, database.NewQuery().
		Equal("campus_id", campusID).
		Equal("location_name", name))
}

// FindByCampus returns every location owned by the given campus.
func (s LocationStore) FindByCampus(ctx context.Context, campusID int64) ([]incident.Location, error) {
	return s.Find(ctx, database.NewQuery().
		Equal("campus_id", campusID).
		OrderAsc("location_name"))
}
