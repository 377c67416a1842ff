package database

import (
	"campusmind/internal/courts"
	"campusmind/internal/equipment"
	"campusmind/internal/reservations"
	"campusmind/internal/sports"
	"campusmind/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on primary keys need the extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&sports.Sport{},
		&courts.Court{},
		&reservations.Reservation{},
		&equipment.SportEquipment{},
	)
}
