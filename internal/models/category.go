package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:60;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"size:200" json:"description"`
	Recipes     []Recipe  `gorm:"many2many:recipe_categories" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
