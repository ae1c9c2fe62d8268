// Package storage uploads cached photo images to S3-compatible object storage.
package storage

import (
	"context"
	"io"
)

// ObjectStorage is the subset of object storage operations the image
// mirror needs.
type ObjectStorage interface {
	// Upload writes size bytes from reader under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Exists reports whether key is present. A missing key is not an error.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for key.
	GetURL(key string) string
}
