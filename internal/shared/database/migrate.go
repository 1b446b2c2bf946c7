package database

import (
	"medq/internal/facilities"
	"medq/internal/patients"
	"medq/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&facilities.Facility{},
		&patients.Patient{},
	)
}
