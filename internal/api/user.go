package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/policy"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/types"
)

// UserHandler exposes the admin account-management endpoints.
type UserHandler struct {
	users  service.IUserService
	images *service.ImageService
	log    *logger.Logger
}

func NewUserHandler(users service.IUserService, images *service.ImageService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		images: images,
		log:    log,
	}
}

func (h *UserHandler) requireAdmin(c *gin.Context) *policy.Identity {
	identity := middleware.IdentityFrom(c)
	if d := policy.Allow(identity, policy.ActionManageUsers, policy.Resource{}); !d.Allowed {
		respondError(c, apperror.Forbidden(d.Reason))
		return nil
	}
	return identity
}

func (h *UserHandler) List(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperror.NotFound("user not found"))
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}

	var req types.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	if h.requireAdmin(c) == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperror.NotFound("user not found"))
		return
	}

	var req types.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete cascades to the target's recipes; stored image files of those
// recipes are removed best-effort afterwards.
func (h *UserHandler) Delete(c *gin.Context) {
	identity := h.requireAdmin(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperror.NotFound("user not found"))
		return
	}

	imagePaths, err := h.users.Delete(c.Request.Context(), identity.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	for _, path := range imagePaths {
		if err := h.images.Detach(c.Request.Context(), path); err != nil {
			h.log.Warn("failed to remove image for deleted user's recipe", "path", path, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
