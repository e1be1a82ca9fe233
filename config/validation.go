package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the invariants the rest of the application assumes.
// Production additionally requires an explicit JWT secret and DB password.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must not be empty"}.Error())
	}
	if cfg.DBHost == "" {
		errs = append(errs, ValidationError{"DB_HOST", "must not be empty"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{"DB_NAME", "must not be empty"}.Error())
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "must be set"}.Error())
	}

	switch cfg.StorageBackend {
	case "local":
		if cfg.UploadDir == "" {
			errs = append(errs, ValidationError{"UPLOAD_DIR", "must be set for local storage"}.Error())
		}
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "must be set for s3 storage"}.Error())
		}
	default:
		errs = append(errs, ValidationError{"STORAGE_BACKEND", "must be local or s3"}.Error())
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "required in production"}.Error())
		}
		if cfg.JWTSecret == "development-secret" {
			errs = append(errs, ValidationError{"JWT_SECRET", "development secret not allowed in production"}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
