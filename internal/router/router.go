package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/api"
	"github.com/recipebook/backend/internal/middleware"
)

// Options carries the handlers and cross-cutting pieces the router wires
// together. RateLimiter is nil when Redis is not configured.
type Options struct {
	Auth        *api.AuthHandler
	Recipes     *api.RecipeHandler
	Categories  *api.CategoryHandler
	Users       *api.UserHandler
	Resolver    middleware.IdentityResolver
	RateLimiter *middleware.RateLimiter
	UploadDir   string
	CORSOrigins []string
}

// SetupRouter configures the application routes. Everything except login,
// health and the static uploads tree sits behind the auth middleware.
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(opts.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = opts.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 24 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/auth/login", opts.Auth.Login)
	if opts.UploadDir != "" {
		// UploadDir is the directory image files land in; stored references
		// point at /uploads/recipes/<file>.
		router.Static("/uploads/recipes", opts.UploadDir)
	}

	limited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if opts.RateLimiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{opts.RateLimiter.Middleware(), handler}
	}

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Resolver))
	{
		protected.GET("/auth/me", opts.Auth.Me)

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", opts.Recipes.List)
			recipes.GET("/:id", opts.Recipes.Get)
			recipes.POST("", limited(opts.Recipes.Create)...)
			recipes.PUT("/:id", limited(opts.Recipes.Update)...)
			recipes.DELETE("/:id", limited(opts.Recipes.Delete)...)
			recipes.POST("/:id/image", limited(opts.Recipes.UploadImage)...)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", opts.Categories.List)
			categories.POST("", opts.Categories.Create)
			categories.PUT("/:id", opts.Categories.Update)
			categories.DELETE("/:id", opts.Categories.Delete)
		}

		users := protected.Group("/admin/users")
		{
			users.GET("", opts.Users.List)
			users.POST("", opts.Users.Create)
			users.GET("/:id", opts.Users.Get)
			users.PUT("/:id", opts.Users.Update)
			users.DELETE("/:id", opts.Users.Delete)
		}
	}

	return router
}
