package database

import (
	"gorm.io/gorm"

	"github.com/connexo-app/backend/internal/models"
)

// Migrate brings the schema up to date. The schema is two tables, so
// GORM auto-migration covers both the postgres and sqlite dialects.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ProfileRecord{},
	)
}
