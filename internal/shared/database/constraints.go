package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the conflict queries lean on. The overlap
// query always filters by date and court, then compares the time bounds, so
// a composite index covers the whole admission hot path.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_date_court_times
		ON reservations (date, court_id, start_time, end_time);
	`).Error
	if err != nil {
		return err
	}

	// Group-wide availability scans resolve courts by physical group.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_courts_group_key
		ON courts (group_key);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
