package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/policy"
	"github.com/recipebook/backend/internal/types"
)

// RecipeStore persists a recipe together with its ordered ingredients, ordered
// steps and category associations. Update replaces the full child sets
// atomically: a concurrent reader sees the fully-old or fully-new aggregate,
// never a mix.
type RecipeStore interface {
	Create(ctx context.Context, authorID uuid.UUID, input *types.RecipeRequest) (*models.Recipe, error)
	Update(ctx context.Context, id uuid.UUID, input *types.RecipeRequest) (*models.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	Search(ctx context.Context, query, categorySlug string) ([]types.RecipeSummary, error)
	SetImagePath(ctx context.Context, id uuid.UUID, imagePath string) error
}

// IAuthService issues sessions and resolves the current user for a request.
type IAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	ResolveIdentity(ctx context.Context, token string) (*policy.Identity, error)
}

// ICategoryService manages categories; slugs are regenerated from the name on
// every create and update.
type ICategoryService interface {
	List(ctx context.Context) ([]types.CategoryWithCount, error)
	Create(ctx context.Context, input *types.CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input *types.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IUserService manages user accounts. Delete cascades to the target's recipes
// and returns the image paths of removed recipes so the caller can clean up
// stored files.
type IUserService interface {
	List(ctx context.Context) ([]types.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*types.UserResponse, error)
	Create(ctx context.Context, input *types.CreateUserRequest) (*types.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, input *types.UpdateUserRequest) (*types.UserResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) ([]string, error)
}
