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

func intPtr(v int) *int { return &v }

func recipeRequest(title string) *types.RecipeRequest {
	return &types.RecipeRequest{
		Title:       title,
		Description: "A test recipe",
		Servings:    intPtr(4),
		PrepTime:    intPtr(10),
		CookTime:    intPtr(20),
		Ingredients: []types.IngredientInput{
			{Name: "flour", Amount: "200", Unit: "g", Order: 1},
			{Name: "milk", Amount: "300", Unit: "ml", Order: 2},
		},
		Steps: []types.StepInput{
			{Instruction: "Mix everything", StepNumber: 1},
			{Instruction: "Cook it", StepNumber: 2},
		},
	}
}

func TestRecipeService_CreateAndFind(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)
	category := testhelpers.CreateCategory(t, db, "Breakfast", "breakfast")

	req := recipeRequest("Pancakes")
	req.CategoryIDs = []uuid.UUID{category.ID}

	created, err := svc.Create(ctx, author.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", created.Title)
	assert.Equal(t, author.ID, created.AuthorID)
	assert.Equal(t, "Alice", created.Author.Name)
	require.Len(t, created.Ingredients, 2)
	require.Len(t, created.Steps, 2)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "breakfast", created.Categories[0].Slug)

	found, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, intPtr(4), found.Servings)
}

func TestRecipeService_ChildrenReturnedInOrder(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)

	req := recipeRequest("Stew")
	// Submitted out of order; reads must come back sorted.
	req.Ingredients = []types.IngredientInput{
		{Name: "carrots", Amount: "3", Order: 3},
		{Name: "beef", Amount: "500", Unit: "g", Order: 1},
		{Name: "onions", Amount: "2", Order: 2},
	}
	req.Steps = []types.StepInput{
		{Instruction: "Simmer for two hours", StepNumber: 2},
		{Instruction: "Brown the beef", StepNumber: 1},
	}

	created, err := svc.Create(ctx, author.ID, req)
	require.NoError(t, err)

	require.Len(t, created.Ingredients, 3)
	assert.Equal(t, "beef", created.Ingredients[0].Name)
	assert.Equal(t, "onions", created.Ingredients[1].Name)
	assert.Equal(t, "carrots", created.Ingredients[2].Name)

	require.Len(t, created.Steps, 2)
	assert.Equal(t, "Brown the beef", created.Steps[0].Instruction)
	assert.Equal(t, "Simmer for two hours", created.Steps[1].Instruction)
}

func TestRecipeService_CreateUnknownCategory(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)

	req := recipeRequest("Pancakes")
	req.CategoryIDs = []uuid.UUID{uuid.New()}

	_, err := svc.Create(ctx, author.ID, req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	// The failed transaction must leave nothing behind.
	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeService_UpdateReplacesChildren(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)
	breakfast := testhelpers.CreateCategory(t, db, "Breakfast", "breakfast")
	dinner := testhelpers.CreateCategory(t, db, "Dinner", "dinner")

	req := recipeRequest("Pancakes")
	req.CategoryIDs = []uuid.UUID{breakfast.ID}
	created, err := svc.Create(ctx, author.ID, req)
	require.NoError(t, err)

	update := &types.RecipeRequest{
		Title: "Savory Pancakes",
		Ingredients: []types.IngredientInput{
			{Name: "buckwheat flour", Amount: "250", Unit: "g", Order: 1},
		},
		Steps: []types.StepInput{
			{Instruction: "Whisk and fry", StepNumber: 1},
		},
		CategoryIDs: []uuid.UUID{dinner.ID},
	}

	updated, err := svc.Update(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Savory Pancakes", updated.Title)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "buckwheat flour", updated.Ingredients[0].Name)
	require.Len(t, updated.Steps, 1)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "dinner", updated.Categories[0].Slug)

	// Omitted optional scalars clear the stored values.
	assert.Nil(t, updated.Servings)
	assert.Nil(t, updated.PrepTime)
	assert.Nil(t, updated.CookTime)

	// No orphaned child rows survive the replacement.
	var ingredientCount int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredientCount).Error)
	assert.EqualValues(t, 1, ingredientCount)
}

func TestRecipeService_UpdateMissingRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)

	_, err := svc.Update(context.Background(), uuid.New(), recipeRequest("Ghost"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRecipeService_DeleteCascades(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)
	category := testhelpers.CreateCategory(t, db, "Breakfast", "breakfast")

	req := recipeRequest("Pancakes")
	req.CategoryIDs = []uuid.UUID{category.ID}
	created, err := svc.Create(ctx, author.ID, req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.FindByID(ctx, created.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	var ingredients, steps, joins int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, db.Model(&models.Step{}).Count(&steps).Error)
	require.NoError(t, db.Table("recipe_categories").Count(&joins).Error)
	assert.Zero(t, ingredients)
	assert.Zero(t, steps)
	assert.Zero(t, joins)

	// The category itself survives.
	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.EqualValues(t, 1, categories)
}

func TestRecipeService_Search(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)
	breakfast := testhelpers.CreateCategory(t, db, "Breakfast", "breakfast")
	dinner := testhelpers.CreateCategory(t, db, "Dinner", "dinner")

	pancakes := recipeRequest("Pancakes")
	pancakes.CategoryIDs = []uuid.UUID{breakfast.ID}
	_, err := svc.Create(ctx, author.ID, pancakes)
	require.NoError(t, err)

	tacos := recipeRequest("Tacos")
	tacos.Description = "Weeknight dinner"
	tacos.Ingredients = []types.IngredientInput{
		{Name: "tortillas", Amount: "8", Order: 1},
		{Name: "ground beef", Amount: "400", Unit: "g", Order: 2},
	}
	tacos.CategoryIDs = []uuid.UUID{dinner.ID}
	_, err = svc.Create(ctx, author.ID, tacos)
	require.NoError(t, err)

	t.Run("no filters returns everything", func(t *testing.T) {
		results, err := svc.Search(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("title substring is case-insensitive", func(t *testing.T) {
		results, err := svc.Search(ctx, "PAN", "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Pancakes", results[0].Title)
		assert.Equal(t, 2, results[0].IngredientCount)
		assert.Equal(t, "Alice", results[0].Author.Name)
	})

	t.Run("matches ingredient names", func(t *testing.T) {
		results, err := svc.Search(ctx, "tortilla", "")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Tacos", results[0].Title)
	})

	t.Run("category filter", func(t *testing.T) {
		results, err := svc.Search(ctx, "", "dinner")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Tacos", results[0].Title)
	})

	t.Run("query and category combine with AND", func(t *testing.T) {
		results, err := svc.Search(ctx, "pancakes", "dinner")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		results, err := svc.Search(ctx, "sushi", "")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestRecipeService_SetImagePath(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	author := testhelpers.CreateUser(t, db, "Alice", "alice@example.com", "password123", policy.RoleEditor)
	created, err := svc.Create(ctx, author.ID, recipeRequest("Pancakes"))
	require.NoError(t, err)

	require.NoError(t, svc.SetImagePath(ctx, created.ID, "/uploads/recipes/abc.jpg"))

	found, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/recipes/abc.jpg", found.ImagePath)

	err = svc.SetImagePath(ctx, uuid.New(), "/uploads/recipes/ghost.jpg")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
