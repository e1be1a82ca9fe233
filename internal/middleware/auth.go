package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/policy"
)

const identityKey = "identity"

// IdentityResolver turns a bearer token into the current user. Injected so
// handlers and stores are testable without a live authentication provider.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*policy.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// resolved identity in the request context.
func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		identity, err := resolver.ResolveIdentity(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware, or nil on
// routes that skipped it.
func IdentityFrom(c *gin.Context) *policy.Identity {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	id, ok := val.(*policy.Identity)
	if !ok {
		return nil
	}
	return id
}
