// Package testhelpers provides database setup and fixtures for service and
// handler tests. Tests run against an in-memory SQLite database with the same
// GORM configuration the production postgres connection uses, so duplicate-key
// translation behaves identically.
package testhelpers

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/policy"
)

var dbCounter atomic.Int64

// NewTestDB opens a fresh in-memory database and migrates the full schema.
// Each call gets its own named shared-cache database so GORM's connection
// pool always sees the same data, and parallel tests never collide.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A shared-cache memory database lives as long as one connection is open.
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Step{},
	))
	return db
}

// CreateUser inserts a user with the given role. MinCost keeps the bcrypt
// work factor out of the test runtime.
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string, role policy.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCategory inserts a category with a slug derived the same way the
// category service derives it.
func CreateCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}
