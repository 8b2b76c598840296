package persistence

import (
	"context"
	"fmt"

	"github.com/campuslogs/crimelog/internal/database"
	"gorm.io/gorm/clause"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(
		&CampusModel{},
		&LocationModel{},
		&NatureModel{},
		&IncidentModel{},
		&OffenseTypeModel{},
		&IncidentOffenseModel{},
	)
}

// Seed inserts the canonical campus rows. Existing codes are left untouched,
// so seeding is idempotent and never clobbers reconciled data.
func Seed(ctx context.Context, db database.Database) error {
	mapper := CampusMapper{}
	for _, campus := range CanonicalCampuses() {
		model := mapper.ToModel(campus)
		result := db.Session(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "campus_code"}},
				DoNothing: true,
			}).
			Create(&model)
		if result.Error != nil {
			return fmt.Errorf("seed campus %s: %w", campus.Code(), result.Error)
		}
	}
	return nil
}

// CheckIntegrity verifies the referential and uniqueness invariants of the
// schema and returns a description of every violation found. An empty slice
// means the store is consistent.
func CheckIntegrity(ctx context.Context, db database.Database) ([]string, error) {
	var violations []string
	session := db.Session(ctx)

	checks := []struct {
		name string
		sql  string
	}{
		{
			"incidents referencing a nonexistent campus",
			`SELECT COUNT(*) FROM incidents i
			 LEFT JOIN campuses c ON i.campus_id = c.campus_id
			 WHERE c.campus_id IS NULL`,
		},
		{
			"incidents referencing a nonexistent location",
			`SELECT COUNT(*) FROM incidents i
			 LEFT JOIN locations l ON i.location_id = l.location_id
			 WHERE i.location_id IS NOT NULL AND l.location_id IS NULL`,
		},
		{
			"locations referencing a nonexistent campus",
			`SELECT COUNT(*) FROM locations l
			 LEFT JOIN campuses c ON l.campus_id = c.campus_id
			 WHERE c.campus_id IS NULL`,
		},
		{
			"offense links referencing a nonexistent incident",
			`SELECT COUNT(*) FROM incident_offenses io
			 LEFT JOIN incidents i ON io.incident_id = i.id
			 WHERE i.id IS NULL`,
		},
		{
			"campus codes shared by multiple rows",
			`SELECT COUNT(*) FROM (
			   SELECT campus_code FROM campuses
			   GROUP BY campus_code HAVING COUNT(*) > 1
			 ) dup`,
		},
	}

	for _, check := range checks {
		var count int64
		if err := session.Raw(check.sql).Scan(&count).Error; err != nil {
			return nil, fmt.Errorf("integrity check %q: %w", check.name, err)
		}
		if count > 0 {
			violations = append(violations, fmt.Sprintf("%d %s", count, check.name))
		}
	}

	return violations, nil
}
