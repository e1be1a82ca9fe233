package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// LocalStore writes files under a web-served uploads directory. The returned
// reference is the URL path ("/uploads/recipes/<name>"), not a filesystem
// path, so stored references stay stable across environments.
type LocalStore struct {
	baseDir    string
	publicPath string
}

// NewLocalStore ensures baseDir exists. publicPath is the URL prefix the
// router serves baseDir under.
func NewLocalStore(baseDir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir, publicPath: publicPath}, nil
}

func (s *LocalStore) Save(_ context.Context, filename string, data []byte, _ string) (string, error) {
	dst := filepath.Join(s.baseDir, filepath.Base(filename))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return path.Join(s.publicPath, filepath.Base(filename)), nil
}

func (s *LocalStore) Delete(_ context.Context, refPath string) error {
	if refPath == "" {
		return nil
	}
	dst := filepath.Join(s.baseDir, filepath.Base(refPath))
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
