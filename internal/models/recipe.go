package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ImagePath   string       `gorm:"size:255" json:"image_path"`
	Servings    *int         `json:"servings"`
	PrepTime    *int         `json:"prep_time"`
	CookTime    *int         `json:"cook_time"`
	AuthorID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User         `gorm:"foreignKey:AuthorID" json:"-"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Steps       []Step       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps"`
	Categories  []Category   `gorm:"many2many:recipe_categories;constraint:OnDelete:CASCADE" json:"categories"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient amounts are free text ("1/2", "a pinch"), never parsed. The
// sort order is caller-supplied and stored verbatim.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Amount   string    `gorm:"size:100;not null" json:"amount"`
	Unit     string    `gorm:"size:50" json:"unit"`
	Order    int       `gorm:"column:sort_order;not null" json:"order"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Step struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
	StepNumber  int       `gorm:"not null" json:"step_number"`
}

func (s *Step) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
