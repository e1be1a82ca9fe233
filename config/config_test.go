package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV",
		"SERVER_HOST", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL",
		"JWT_SECRET", "STORAGE_BACKEND", "UPLOAD_DIR", "S3_BUCKET_NAME", "AWS_REGION",
		"CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "recipebook", cfg.DBName)
	assert.Equal(t, "development-secret", cfg.JWTSecret)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "public/uploads/recipes", cfg.UploadDir)
	assert.False(t, cfg.RedisConfigured())
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadConfig_ExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.True(t, cfg.RedisConfigured())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfig_InvalidRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ProductionRequirements(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DB_PASSWORD", "hunter2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.JWTSecret)
}

func TestLoadConfig_ProductionRejectsDevelopmentSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "development-secret")
	t.Setenv("DB_PASSWORD", "hunter2")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development secret not allowed")
}

func TestValidateConfig_StorageBackend(t *testing.T) {
	clearEnv(t)

	base := func() *Config {
		return &Config{
			ServerPort:     "8080",
			DBHost:         "localhost",
			DBName:         "recipebook",
			JWTSecret:      "secret",
			StorageBackend: "local",
			UploadDir:      "uploads",
		}
	}

	t.Run("valid local", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(base()))
	})

	t.Run("local requires upload dir", func(t *testing.T) {
		cfg := base()
		cfg.UploadDir = ""
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("s3 requires bucket", func(t *testing.T) {
		cfg := base()
		cfg.StorageBackend = "s3"
		require.Error(t, ValidateConfig(cfg))
		cfg.S3Bucket = "recipe-images"
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := base()
		cfg.StorageBackend = "ftp"
		assert.Error(t, ValidateConfig(cfg))
	})
}

func TestGetEnvironment(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())

	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
