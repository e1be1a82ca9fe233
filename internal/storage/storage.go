// Package storage persists recipe image bytes behind a small interface so
// the image service stays independent of where files land.
package storage

import "context"

// Store saves and removes image files. Save returns the stable relative
// reference path recorded on the recipe; the same path must resolve across
// environments. Delete must be idempotent: removing an absent file is a
// no-op, not an error.
type Store interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, refPath string) error
}
