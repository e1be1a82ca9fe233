package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/policy"
	"github.com/recipebook/backend/internal/types"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func userResponse(u *models.User, recipeCount int64) *types.UserResponse {
	return &types.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		RecipeCount: recipeCount,
		CreatedAt:   u.CreatedAt,
	}
}

func (s *UserService) recipeCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

// List returns all users newest first, with their recipe counts. Password
// hashes never appear in the response type.
func (s *UserService) List(ctx context.Context) ([]types.UserResponse, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]types.UserResponse, len(users))
	for i := range users {
		count, err := s.recipeCount(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		out[i] = *userResponse(&users[i], count)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*types.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	count, err := s.recipeCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return userResponse(&user, count), nil
}

func (s *UserService) Create(ctx context.Context, input *types.CreateUserRequest) (*types.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := policy.Role(input.Role)
	if input.Role == "" {
		role = policy.RoleViewer
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, err
	}
	return userResponse(user, 0), nil
}

// Update changes name, email and role; the stored credential is replaced only
// when a new password is supplied.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input *types.UpdateUserRequest) (*types.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Role = policy.Role(input.Role)
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, err
	}

	count, err := s.recipeCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return userResponse(&user, count), nil
}

// Delete removes the user and cascades to every recipe they authored,
// including child rows and category associations. It refuses to delete the
// acting admin's own account. The image paths of removed recipes are returned
// so the caller can clean up stored files.
func (s *UserService) Delete(ctx context.Context, actorID, id uuid.UUID) ([]string, error) {
	if actorID == id {
		return nil, apperror.Forbidden("cannot delete your own account")
	}

	var imagePaths []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("user not found")
			}
			return err
		}

		var recipes []models.Recipe
		if err := tx.Where("author_id = ?", id).Find(&recipes).Error; err != nil {
			return err
		}
		recipeIDs := make([]uuid.UUID, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID)
			if r.ImagePath != "" {
				imagePaths = append(imagePaths, r.ImagePath)
			}
		}

		if len(recipeIDs) > 0 {
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.Step{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM recipe_categories WHERE recipe_id IN ?", recipeIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return imagePaths, nil
}
