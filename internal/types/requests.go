package types

import "github.com/google/uuid"

// IngredientInput carries one ingredient row. Amount is free text so values
// like "1/2" or "a pinch" survive round-trips.
type IngredientInput struct {
	Name   string `json:"name" binding:"required,max=255"`
	Amount string `json:"amount" binding:"required,max=100"`
	Unit   string `json:"unit" binding:"omitempty,max=50"`
	Order  int    `json:"order" binding:"min=0"`
}

type StepInput struct {
	Instruction string `json:"instruction" binding:"required"`
	StepNumber  int    `json:"step_number" binding:"required,min=1"`
}

// RecipeRequest is the body of both POST /recipes and PUT /recipes/:id. An
// update replaces the full child sets, so the same shape serves both.
type RecipeRequest struct {
	Title       string            `json:"title" binding:"required,max=200"`
	Description string            `json:"description" binding:"omitempty,max=2000"`
	Servings    *int              `json:"servings" binding:"omitempty,min=1,max=100"`
	PrepTime    *int              `json:"prep_time" binding:"omitempty,min=0,max=9999"`
	CookTime    *int              `json:"cook_time" binding:"omitempty,min=0,max=9999"`
	CategoryIDs []uuid.UUID       `json:"category_ids"`
	Ingredients []IngredientInput `json:"ingredients" binding:"required,min=1,dive"`
	Steps       []StepInput       `json:"steps" binding:"required,min=1,dive"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN EDITOR VIEWER"`
}

// UpdateUserRequest leaves the stored credential unchanged when Password is
// empty.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	Role     string `json:"role" binding:"required,oneof=ADMIN EDITOR VIEWER"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
