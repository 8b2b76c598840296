package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/internal/database"
)

// NatureStore implements incident.NatureStore using GORM.
type NatureStore struct {
	database.Repository[incident.Nature, NatureModel]
}

// NewNatureStore creates a new NatureStore.
func NewNatureStore(db database.Database) NatureStore {
	return NatureStore{
		Repository: database.NewRepository[incident.Nature, NatureModel](db, NatureMapper{}, "nature"),
	}
}

// Save upserts a nature row by its unique text.
func (s NatureStore) Save(ctx context.Context, nature incident.Nature) (incident.Nature, error) {
	model := s.Mapper().ToModel(nature)

	if model.NatureID == 0 {
		existing, err := s.FindByText(ctx, nature.Text())
		if err == nil {
			return existing, nil
		} else if !errors.Is(err, database.ErrNotFound) {
			return incident.Nature{}, err
		}
	}

	if result := s.DB(ctx).Save(&model); result.Error != nil {
		return incident.Nature{}, fmt.Errorf("save nature: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindByText returns the nature row with the given text.
func (s NatureStore) FindByText(ctx context.Context, text string) (incident.Nature, error) {
	return s.FindOne(ctx, database.NewQuery().Equal("nature_text", text))
}
