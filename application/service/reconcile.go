package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslogs/crimelog/domain/incident"
	"github.com/campuslogs/crimelog/infrastructure/mapping"
	"github.com/campuslogs/crimelog/infrastructure/persistence"
	"github.com/campuslogs/crimelog/internal/database"
	"github.com/campuslogs/crimelog/internal/log"
	"gorm.io/gorm"
)

// MergeResult describes how one mapping entry was applied.
type MergeResult struct {
	DuplicateCode      string
	CanonicalCode      string
	Applied            bool
	IncidentsRepointed int64
	LocationsRepointed int64
	LocationsMerged    int64
}

// ReconcileSummary tallies what one reconciliation run did.
type ReconcileSummary struct {
	Merges     []MergeResult
	JunkPurged int64
	DryRun     bool
}

// CampusesMerged returns the number of mapping entries that were applied.
func (s ReconcileSummary) CampusesMerged() int {
	n := 0
	for _, m := range s.Merges {
		if m.Applied {
			n++
		}
	}
	return n
}

// Reconcile folds duplicate campus rows into their canonical equivalents as
// directed by a mapping artifact, purges junk incidents, and verifies
// referential integrity afterwards. Each mapping entry is applied in its own
// transaction, so a failure partway leaves every earlier merge committed and
// the failing one fully rolled back. Re-running against a reconciled
// database is a no-op.
type Reconcile struct {
	db       database.Database
	campuses incident.CampusStore
	logger   *log.Logger
}

// NewReconcile creates a Reconcile service.
func NewReconcile(db database.Database, campuses incident.CampusStore, logger *log.Logger) *Reconcile {
	return &Reconcile{
		db:       db,
		campuses: campuses,
		logger:   logger.With("component", "reconcile"),
	}
}

// Run applies the mapping. With dryRun set it reports what would change
// without touching the database, and skips the verification pass.
func (r *Reconcile) Run(ctx context.Context, m mapping.Mapping, dryRun bool) (ReconcileSummary, error) {
	if err := m.Validate(); err != nil {
		return ReconcileSummary{}, err
	}

	summary := ReconcileSummary{DryRun: dryRun}
	for _, entry := range m.Entries {
		result, err := r.applyEntry(ctx, entry, dryRun)
		if err != nil {
			return summary, fmt.Errorf("merge %s into %s: %w", entry.Duplicate, entry.Canonical, err)
		}
		summary.Merges = append(summary.Merges, result)
	}

	purged, err := r.purgeJunk(ctx, dryRun)
	if err != nil {
		return summary, err
	}
	summary.JunkPurged = purged

	if !dryRun {
		violations, err := persistence.CheckIntegrity(ctx, r.db)
		if err != nil {
			return summary, err
		}
		if len(violations) > 0 {
			return summary, incident.NewIntegrityError(violations)
		}
	}

	r.logger.Info("reconciliation complete",
		"merged", summary.CampusesMerged(),
		"junk_purged", summary.JunkPurged,
		"dry_run", dryRun)
	return summary, nil
}

// applyEntry folds one duplicate campus into its canonical one. A duplicate
// code with no row is skipped; a canonical code with no row is an error,
// since the canonical set is seeded at migration time.
func (r *Reconcile) applyEntry(ctx context.Context, entry mapping.Entry, dryRun bool) (MergeResult, error) {
	result := MergeResult{DuplicateCode: entry.Duplicate, CanonicalCode: entry.Canonical}

	dup, err := r.campuses.FindByCode(ctx, entry.Duplicate)
	if errors.Is(err, database.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return result, err
	}

	canonical, err := r.campuses.FindByCode(ctx, entry.Canonical)
	if errors.Is(err, database.ErrNotFound) {
		return result, fmt.Errorf("canonical campus %s does not exist", entry.Canonical)
	}
	if err != nil {
		return result, err
	}

	if dryRun {
		return r.previewEntry(ctx, dup, canonical, result)
	}

	err = database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		return r.mergeCampus(tx, dup, canonical, &result)
	})
	if err != nil {
		return result, err
	}
	result.Applied = true

	r.logger.Info("campus merged",
		"duplicate", entry.Duplicate,
		"canonical", entry.Canonical,
		"incidents", result.IncidentsRepointed,
		"locations", result.LocationsRepointed)
	return result, nil
}

// mergeCampus moves everything owned by dup to canonical and deletes the
// dup row, all inside the caller's transaction. Locations whose name already
// exists under the canonical campus are merged into the existing row rather
// than moved, to preserve the per-campus name uniqueness constraint.
func (r *Reconcile) mergeCampus(tx *gorm.DB, dup, canonical incident.Campus, result *MergeResult) error {
	var dupLocations []persistence.LocationModel
	if err := tx.Where("campus_id = ?", dup.ID()).Find(&dupLocations).Error; err != nil {
		return fmt.Errorf("load locations: %w", err)
	}

	for _, loc := range dupLocations {
		var existing persistence.LocationModel
		err := tx.Where("campus_id = ? AND location_name = ?", canonical.ID(), loc.LocationName).
			First(&existing).Error
		switch {
		case err == nil:
			// Same name already under the canonical campus: repoint the
			// incidents at the existing row and drop the duplicate location.
			res := tx.Model(&persistence.IncidentModel{}).
				Where("location_id = ?", loc.LocationID).
				Update("location_id", existing.LocationID)
			if res.Error != nil {
				return fmt.Errorf("repoint incidents off location %d: %w", loc.LocationID, res.Error)
			}
			if err := tx.Delete(&persistence.LocationModel{}, loc.LocationID).Error; err != nil {
				return fmt.Errorf("delete merged location %d: %w", loc.LocationID, err)
			}
			result.LocationsMerged++
		case errors.Is(err, gorm.ErrRecordNotFound):
			res := tx.Model(&persistence.LocationModel{}).
				Where("location_id = ?", loc.LocationID).
				Update("campus_id", canonical.ID())
			if res.Error != nil {
				return fmt.Errorf("repoint location %d: %w", loc.LocationID, res.Error)
			}
			result.LocationsRepointed++
		default:
			return fmt.Errorf("find canonical location: %w", err)
		}
	}

	res := tx.Model(&persistence.IncidentModel{}).
		Where("campus_id = ?", dup.ID()).
		Update("campus_id", canonical.ID())
	if res.Error != nil {
		return fmt.Errorf("repoint incidents: %w", res.Error)
	}
	result.IncidentsRepointed = res.RowsAffected

	if err := tx.Delete(&persistence.CampusModel{}, dup.ID()).Error; err != nil {
		return fmt.Errorf("delete duplicate campus: %w", err)
	}
	return nil
}

// previewEntry fills a MergeResult with counts without modifying anything.
func (r *Reconcile) previewEntry(ctx context.Context, dup, canonical incident.Campus, result MergeResult) (MergeResult, error) {
	session := r.db.Session(ctx)

	if err := session.Model(&persistence.IncidentModel{}).
		Where("campus_id = ?", dup.ID()).
		Count(&result.IncidentsRepointed).Error; err != nil {
		return result, err
	}

	var dupLocations []persistence.LocationModel
	if err := session.Where("campus_id = ?", dup.ID()).Find(&dupLocations).Error; err != nil {
		return result, err
	}
	for _, loc := range dupLocations {
		var count int64
		if err := session.Model(&persistence.LocationModel{}).
			Where("campus_id = ? AND location_name = ?", canonical.ID(), loc.LocationName).
			Count(&count).Error; err != nil {
			return result, err
		}
		if count > 0 {
			result.LocationsMerged++
		} else {
			result.LocationsRepointed++
		}
	}

	result.Applied = true
	return result, nil
}

// purgeJunk removes stored incidents whose incident number fails validation.
// These are placeholder rows from earlier scrapes, before junk filtering
// happened at parse time.
func (r *Reconcile) purgeJunk(ctx context.Context, dryRun bool) (int64, error) {
	session := r.db.Session(ctx)

	var candidates []persistence.IncidentModel
	if err := session.Select("id", "incident_number").Find(&candidates).Error; err != nil {
		return 0, fmt.Errorf("scan for junk incidents: %w", err)
	}

	var junkIDs []int64
	for _, c := range candidates {
		if !incident.ValidIncidentNumber(c.IncidentNumber) {
			junkIDs = append(junkIDs, c.ID)
		}
	}
	if len(junkIDs) == 0 || dryRun {
		return int64(len(junkIDs)), nil
	}

	err := database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("incident_id IN ?", junkIDs).
			Delete(&persistence.IncidentOffenseModel{}).Error; err != nil {
			return fmt.Errorf("delete junk offense links: %w", err)
		}
		if err := tx.Where("id IN ?", junkIDs).
			Delete(&persistence.IncidentModel{}).Error; err != nil {
			return fmt.Errorf("delete junk incidents: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("junk incidents purged", "count", len(junkIDs))
	return int64(len(junkIDs)), nil
}
