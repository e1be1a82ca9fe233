package database

import (
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model. Ordering
// matters: users before recipes before child tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Step{},
	)
}
