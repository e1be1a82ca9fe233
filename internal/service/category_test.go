package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/policy"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/testhelpers"
	"github.com/recipebook/backend/internal/types"
)

func TestToSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Breakfast", "breakfast"},
		{"Quick & Easy", "quick-and-easy"},
		{"Main Course!", "main-course"},
		{"  Spaced  Out  ", "spaced-out"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, service.ToSlug(tt.name))
		// Deterministic: repeated calls agree.
		assert.Equal(t, service.ToSlug(tt.name), service.ToSlug(tt.name))
	}
}

func TestCategoryService_CreateAndList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCategoryService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &types.CategoryRequest{Name: "Quick & Easy", Description: "Under 30 minutes"})
	require.NoError(t, err)
	assert.Equal(t, "quick-and-easy", created.Slug)
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err = svc.Create(ctx, &types.CategoryRequest{Name: "Baking"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordered by name.
	assert.Equal(t, "Baking", list[0].Name)
	assert.Equal(t, "Quick & Easy", list[1].Name)
	assert.EqualValues(t, 0, list[0].RecipeCount)
}

func TestCategoryService_CreateDuplicateName(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCategoryService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &types.CategoryRequest{Name: "Lunch"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &types.CategoryRequest{Name: "Lunch"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	// A different name with a colliding slug is also a conflict.
	_, err = svc.Create(ctx, &types.CategoryRequest{Name: "Lunch!"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCategoryService_UpdateRegeneratesSlug(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCategoryService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &types.CategoryRequest{Name: "Lunch"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &types.CategoryRequest{Name: "Light Lunch", Description: "Midday meals"})
	require.NoError(t, err)
	assert.Equal(t, "Light Lunch", updated.Name)
	assert.Equal(t, "light-lunch", updated.Slug)
	assert.Equal(t, "Midday meals", updated.Description)

	_, err = svc.Update(ctx, uuid.New(), &types.CategoryRequest{Name: "Ghost"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCategoryService_DeleteKeepsRecipes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	categories := service.NewCategoryService(db)
	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)
	category, err := categories.Create(ctx, &types.CategoryRequest{Name: "Dinner"})
	require.NoError(t, err)

	req := recipeRequest("Tacos")
	req.CategoryIDs = []uuid.UUID{category.ID}
	recipe, err := recipes.Create(ctx, author.ID, req)
	require.NoError(t, err)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, list[0].RecipeCount)

	require.NoError(t, categories.Delete(ctx, category.ID))

	// The recipe survives with its category association removed.
	found, err := recipes.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Categories)

	var joins int64
	require.NoError(t, db.Table("recipe_categories").Count(&joins).Error)
	assert.Zero(t, joins)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCategoryService_DeleteMissing(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewCategoryService(db)

	err := svc.Delete(context.Background(), uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
