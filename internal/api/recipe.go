package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/policy"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.RecipeStore
	images  *service.ImageService
	log     *logger.Logger
}

func NewRecipeHandler(recipes service.RecipeStore, images *service.ImageService, log *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		log:     log,
	}
}

// recipeDetail is the full-aggregate response: the recipe row with ordered
// children plus an author projection.
type recipeDetail struct {
	*models.Recipe
	Author types.AuthorSummary `json:"author"`
}

func detailOf(r *models.Recipe) recipeDetail {
	return recipeDetail{
		Recipe: r,
		Author: types.AuthorSummary{ID: r.Author.ID, Name: r.Author.Name},
	}
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("recipe not found")
	}
	return id, nil
}

func (h *RecipeHandler) List(c *gin.Context) {
	summaries, err := h.recipes.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	recipe, err := h.recipes.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detailOf(recipe))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if d := policy.Allow(identity, policy.ActionCreateRecipe, policy.Resource{}); !d.Allowed {
		respondError(c, apperror.Forbidden(d.Reason))
		return
	}

	var req types.RecipeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), identity.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detailOf(recipe))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	existing, err := h.recipes.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	identity := middleware.IdentityFrom(c)
	if d := policy.Allow(identity, policy.ActionUpdateRecipe, policy.Resource{AuthorID: existing.AuthorID}); !d.Allowed {
		respondError(c, apperror.Forbidden(d.Reason))
		return
	}

	var req types.RecipeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detailOf(recipe))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	existing, err := h.recipes.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	identity := middleware.IdentityFrom(c)
	if d := policy.Allow(identity, policy.ActionDeleteRecipe, policy.Resource{AuthorID: existing.AuthorID}); !d.Allowed {
		respondError(c, apperror.Forbidden(d.Reason))
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	// The file removal is outside the delete transaction; a failure here
	// leaks a file, never a database row.
	if existing.ImagePath != "" {
		if err := h.images.Detach(c.Request.Context(), existing.ImagePath); err != nil {
			h.log.Warn("failed to remove image for deleted recipe", "recipe_id", id, "path", existing.ImagePath, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadImage handles POST /recipes/:id/image with multipart form field
// "image".
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	existing, err := h.recipes.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	identity := middleware.IdentityFrom(c)
	if d := policy.Allow(identity, policy.ActionAttachImage, policy.Resource{AuthorID: existing.AuthorID}); !d.Allowed {
		respondError(c, apperror.Forbidden(d.Reason))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperror.Validation("no image file provided", map[string]string{
			"image": "this field is required",
		}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperror.Storage("failed to read uploaded file", err))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, apperror.Storage("failed to read uploaded file", err))
		return
	}

	refPath, err := h.images.Attach(c.Request.Context(), id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ImageResponse{ImagePath: refPath})
}
