package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/storage"
)

const maxImageSize = 5 * 1024 * 1024

// file extension per accepted mime type
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageService stores and removes recipe image files. It deliberately does
// not share a transaction with the recipe store: an image failure must never
// corrupt the recipe row.
type ImageService struct {
	recipes RecipeStore
	store   storage.Store
	log     *logger.Logger
}

func NewImageService(recipes RecipeStore, store storage.Store, log *logger.Logger) *ImageService {
	return &ImageService{
		recipes: recipes,
		store:   store,
		log:     log,
	}
}

// Attach validates and persists the image, replaces any previously attached
// file, records the new reference on the recipe and returns it. Removing the
// old file is best-effort: losing the new image is worse than leaking an
// orphaned old one.
func (s *ImageService) Attach(ctx context.Context, recipeID uuid.UUID, data []byte, declaredMimeType string) (string, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return "", err
	}

	if len(data) > maxImageSize {
		return "", apperror.Validation("file size exceeds 5MB limit", map[string]string{
			"image": "file size exceeds 5MB limit",
		})
	}
	ext, ok := imageExtensions[declaredMimeType]
	if !ok {
		return "", apperror.Validation("only JPEG, PNG, and WebP images are allowed", map[string]string{
			"image": "only JPEG, PNG, and WebP images are allowed",
		})
	}

	filename := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	refPath, err := s.store.Save(ctx, filename, data, declaredMimeType)
	if err != nil {
		return "", apperror.Storage("failed to store image", err)
	}

	if recipe.ImagePath != "" {
		if err := s.store.Delete(ctx, recipe.ImagePath); err != nil {
			s.log.Warn("failed to remove previous image", "recipe_id", recipeID, "path", recipe.ImagePath, "error", err)
		}
	}

	if err := s.recipes.SetImagePath(ctx, recipeID, refPath); err != nil {
		return "", err
	}
	return refPath, nil
}

// Detach removes the stored bytes for refPath. Detaching an already-absent
// reference is a no-op.
func (s *ImageService) Detach(ctx context.Context, refPath string) error {
	if refPath == "" {
		return nil
	}
	if err := s.store.Delete(ctx, refPath); err != nil {
		return apperror.Storage("failed to delete image", err)
	}
	return nil
}
