package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/policy"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/types"
)

type CategoryHandler struct {
	categories service.ICategoryService
}

func NewCategoryHandler(categories service.ICategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) requireWrite(c *gin.Context) bool {
	identity := middleware.IdentityFrom(c)
	if d := policy.Allow(identity, policy.ActionWriteCategory, policy.Resource{}); !d.Allowed {
		respondError(c, apperror.Forbidden(d.Reason))
		return false
	}
	return true
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	if !h.requireWrite(c) {
		return
	}

	var req types.CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	if !h.requireWrite(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperror.NotFound("category not found"))
		return
	}

	var req types.CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if !h.requireWrite(c) {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperror.NotFound("category not found"))
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
