package database

import (
	"safar/migrations"
	"safar/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	if err := migrations.CreateTripsTable(db); err != nil {
		return err
	}

	if err := migrations.CreatePreferencesTable(db); err != nil {
		return err
	}

	if err := migrations.CreatePriceAlertsTable(db); err != nil {
		return err
	}

	if err := migrations.CreateNotificationsTable(db); err != nil {
		return err
	}

	return nil
}
