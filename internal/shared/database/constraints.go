package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the dashboards lean on that AutoMigrate
// does not produce on its own.
func MigrateConstraints(db *gorm.DB) error {
	// Doctor slot views group by facility + day + slot.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_patients_facility_day_slot
		ON patients (facility_name, submitted_on, slot_number);
	`).Error
	if err != nil {
		return err
	}

	// Admin overview filters by submission date range.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_patients_created_at
		ON patients (created_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
