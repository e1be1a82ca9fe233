package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/api"
	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/router"
	"github.com/recipebook/backend/internal/server"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mode := "development"
	if config.IsProduction() {
		mode = "production"
	}
	appLog, err := logger.New(mode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.New(cfg)
	if err != nil {
		appLog.Fatal("failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		appLog.Fatal("failed to migrate database", "error", err)
	}

	var store storage.Store
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3Region, "recipes", "/uploads/recipes")
	default:
		store, err = storage.NewLocalStore(cfg.UploadDir, "/uploads/recipes")
	}
	if err != nil {
		appLog.Fatal("failed to initialize image storage", "error", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	categoryService := service.NewCategoryService(db)
	userService := service.NewUserService(db)
	imageService := service.NewImageService(recipeService, store, appLog)

	var rateLimiter *middleware.RateLimiter
	if cfg.RedisConfigured() {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			appLog.Fatal("failed to connect to Redis", "error", err)
		}
		rateLimiter = middleware.NewRecipeMutationRateLimiter(redisClient)
	}

	uploadDir := ""
	if cfg.StorageBackend == "local" {
		uploadDir = cfg.UploadDir
	}

	engine := router.SetupRouter(router.Options{
		Auth:        api.NewAuthHandler(authService),
		Recipes:     api.NewRecipeHandler(recipeService, imageService, appLog),
		Categories:  api.NewCategoryHandler(categoryService),
		Users:       api.NewUserHandler(userService, imageService, appLog),
		Resolver:    authService,
		RateLimiter: rateLimiter,
		UploadDir:   uploadDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := server.New(engine, cfg.Addr(), appLog)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			appLog.Fatal("server error", "error", err)
		}
	case sig := <-quit:
		appLog.Info("received signal", "signal", sig.String())
	}

	appLog.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		appLog.Fatal("server shutdown error", "error", err)
	}
	appLog.Info("server stopped")
}
