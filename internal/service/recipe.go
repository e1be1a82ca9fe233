package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/types"
)

// RecipeService is the GORM-backed RecipeStore.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// loadCategories resolves categoryIDs against the categories table and fails
// with NotFound when any id is missing.
func loadCategories(tx *gorm.DB, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(dedupe(ids)) {
		return nil, apperror.NotFound("one or more categories do not exist")
	}
	return categories, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func buildIngredients(recipeID uuid.UUID, inputs []types.IngredientInput) []models.Ingredient {
	ingredients := make([]models.Ingredient, len(inputs))
	for i, in := range inputs {
		ingredients[i] = models.Ingredient{
			RecipeID: recipeID,
			Name:     in.Name,
			Amount:   in.Amount,
			Unit:     in.Unit,
			Order:    in.Order,
		}
	}
	return ingredients
}

func buildSteps(recipeID uuid.UUID, inputs []types.StepInput) []models.Step {
	steps := make([]models.Step, len(inputs))
	for i, in := range inputs {
		steps[i] = models.Step{
			RecipeID:    recipeID,
			Instruction: in.Instruction,
			StepNumber:  in.StepNumber,
		}
	}
	return steps
}

func insertChildren(tx *gorm.DB, recipe *models.Recipe, input *types.RecipeRequest, categories []models.Category) error {
	ingredients := buildIngredients(recipe.ID, input.Ingredients)
	if err := tx.Create(&ingredients).Error; err != nil {
		return err
	}
	steps := buildSteps(recipe.ID, input.Steps)
	if err := tx.Create(&steps).Error; err != nil {
		return err
	}
	if len(categories) > 0 {
		// Omit("Categories.*") restricts the append to join rows; the
		// category records themselves are never touched.
		if err := tx.Model(recipe).Omit("Categories.*").Association("Categories").Append(&categories); err != nil {
			return err
		}
	}
	return nil
}

// Create stores a new recipe with its full child set. Referential integrity
// of category ids is the only business rule that can reject a well-formed
// create.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, input *types.RecipeRequest) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:       input.Title,
		Description: input.Description,
		Servings:    input.Servings,
		PrepTime:    input.PrepTime,
		CookTime:    input.CookTime,
		AuthorID:    authorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := loadCategories(tx, input.CategoryIDs)
		if err != nil {
			return err
		}
		if err := tx.Omit("Ingredients", "Steps", "Categories", "Author").Create(recipe).Error; err != nil {
			return err
		}
		return insertChildren(tx, recipe, input, categories)
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(ctx, recipe.ID)
}

// Update replaces the recipe's scalar fields and its entire ingredient, step
// and category sets in one transaction. Existing child rows are deleted and
// the submitted sets inserted; there is no diffing, renumbering or
// deduplication of caller-supplied order values.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, input *types.RecipeRequest) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("recipe not found")
			}
			return err
		}

		categories, err := loadCategories(tx, input.CategoryIDs)
		if err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_categories WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}

		if err := insertChildren(tx, &recipe, input, categories); err != nil {
			return err
		}

		// Updates via map so nil servings/prep/cook clear the columns.
		return tx.Model(&recipe).Updates(map[string]interface{}{
			"title":       input.Title,
			"description": input.Description,
			"servings":    input.Servings,
			"prep_time":   input.PrepTime,
			"cook_time":   input.CookTime,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(ctx, id)
}

// Delete removes the recipe and all child rows. The attached image file, if
// any, is the caller's responsibility.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("recipe not found")
			}
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_categories WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// FindByID returns the full aggregate with ingredients ordered by sort order
// and steps by step number.
func (s *RecipeService) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Preload("Categories").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

// Search lists recipes newest first. A non-empty query must match title,
// description or an ingredient name as a case-insensitive substring; a
// non-empty categorySlug restricts to recipes in that category. Both filters
// combine with AND; empty values impose no filter.
func (s *RecipeService) Search(ctx context.Context, query, categorySlug string) ([]types.RecipeSummary, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Ingredients").
		Preload("Steps").
		Preload("Categories").
		Preload("Author")

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		ingredientMatch := s.db.Model(&models.Ingredient{}).
			Select("recipe_id").
			Where("LOWER(name) LIKE ?", like)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR recipes.id IN (?)", like, like, ingredientMatch)
	}

	if categorySlug != "" {
		categoryMatch := s.db.Table("recipe_categories").
			Select("recipe_categories.recipe_id").
			Joins("JOIN categories ON categories.id = recipe_categories.category_id").
			Where("categories.slug = ?", categorySlug)
		q = q.Where("recipes.id IN (?)", categoryMatch)
	}

	var recipes []models.Recipe
	if err := q.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	summaries := make([]types.RecipeSummary, len(recipes))
	for i, r := range recipes {
		categories := make([]types.CategorySummary, len(r.Categories))
		for j, c := range r.Categories {
			categories[j] = types.CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
		}
		summaries[i] = types.RecipeSummary{
			ID:              r.ID,
			Title:           r.Title,
			Description:     r.Description,
			ImagePath:       r.ImagePath,
			Servings:        r.Servings,
			PrepTime:        r.PrepTime,
			CookTime:        r.CookTime,
			Author:          types.AuthorSummary{ID: r.Author.ID, Name: r.Author.Name},
			Categories:      categories,
			IngredientCount: len(r.Ingredients),
			StepCount:       len(r.Steps),
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
		}
	}
	return summaries, nil
}

// SetImagePath records the stored image reference on the recipe row. It runs
// outside the aggregate transaction: image attachment and recipe edits are
// never required to succeed or fail together.
func (s *RecipeService) SetImagePath(ctx context.Context, id uuid.UUID, imagePath string) error {
	res := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("image_path", imagePath)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("recipe not found")
	}
	return nil
}
