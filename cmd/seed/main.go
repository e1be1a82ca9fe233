// Command seed creates the default admin account and the stock categories.
// It is idempotent: existing rows are left untouched.
package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/policy"
	"github.com/recipebook/backend/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:         "Admin User",
		Email:        "admin@recipes.local",
		PasswordHash: string(hash),
		Role:         policy.RoleAdmin,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	log.Printf("admin user ready: %s", admin.Email)

	names := []string{
		"Breakfast",
		"Lunch",
		"Dinner",
		"Desserts",
		"Snacks",
		"Drinks",
		"Vegetarian",
		"Vegan",
		"Quick & Easy",
		"Baking",
	}
	for _, name := range names {
		category := models.Category{
			Name: name,
			Slug: service.ToSlug(name),
		}
		if err := db.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
			log.Fatalf("failed to seed category %q: %v", name, err)
		}
	}
	log.Printf("%d categories ready", len(names))
}
