package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/types"
)

// ToSlug derives the URL-safe identifier for a category name. It is a pure
// function: the same name always yields the same slug.
func ToSlug(name string) string {
	return slug.Make(name)
}

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns all categories ordered by name, each with its recipe count.
func (s *CategoryService) List(ctx context.Context) ([]types.CategoryWithCount, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	out := make([]types.CategoryWithCount, len(categories))
	for i, c := range categories {
		var count int64
		if err := s.db.WithContext(ctx).
			Table("recipe_categories").
			Where("category_id = ?", c.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		out[i] = types.CategoryWithCount{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			RecipeCount: count,
			CreatedAt:   c.CreatedAt,
		}
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, input *types.CategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        input.Name,
		Slug:        ToSlug(input.Name),
		Description: input.Description,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("category name already exists")
		}
		return nil, err
	}
	return category, nil
}

// Update regenerates the slug from the new name.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input *types.CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}

	category.Name = input.Name
	category.Slug = ToSlug(input.Name)
	category.Description = input.Description

	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("category name already exists")
		}
		return nil, err
	}
	return &category, nil
}

// Delete removes the category and its recipe associations. The recipes
// themselves are untouched.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("category not found")
			}
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
