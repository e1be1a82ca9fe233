package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/apperror"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/types"
)

type AuthHandler struct {
	auth service.IAuthService
}

func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{Token: token})
}

// Me returns the identity resolved for the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		respondError(c, apperror.Unauthenticated("authentication required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    identity.ID,
		"name":  identity.Name,
		"email": identity.Email,
		"role":  identity.Role,
	})
}
