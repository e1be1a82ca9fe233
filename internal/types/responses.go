package types

import (
	"time"

	"github.com/google/uuid"
)

// AuthorSummary is the author projection embedded in recipe listings.
type AuthorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeSummary is one row of GET /recipes: scalars plus the author,
// categories and child counts, but not the child rows themselves.
type RecipeSummary struct {
	ID              uuid.UUID         `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	ImagePath       string            `json:"image_path"`
	Servings        *int              `json:"servings"`
	PrepTime        *int              `json:"prep_time"`
	CookTime        *int              `json:"cook_time"`
	Author          AuthorSummary     `json:"author"`
	Categories      []CategorySummary `json:"categories"`
	IngredientCount int               `json:"ingredient_count"`
	StepCount       int               `json:"step_count"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// CategoryWithCount is one row of GET /categories.
type CategoryWithCount struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	RecipeCount int64     `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserResponse is the admin-facing user projection. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	RecipeCount int64     `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ImageResponse struct {
	ImagePath string `json:"imagePath"`
}
