package repositories

import (
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every relational table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Follow{},
		&models.Comment{},
		&models.Probe{},
	)
}
