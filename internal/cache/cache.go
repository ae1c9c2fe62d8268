// Package cache persists downloaded photo image bytes keyed by photo id.
package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyKey is returned when inserting under an empty photo id.
var ErrEmptyKey = errors.New("cache key cannot be empty")

// ImageCache is a durable id -> bytes store. Both operations are
// synchronous and local; implementations are safe for concurrent use.
type ImageCache interface {
	// Lookup returns the bytes stored under key, if any.
	Lookup(key string) ([]byte, bool)

	// Insert stores data under key, silently replacing any previous value.
	Insert(key string, data []byte) error
}

// Backend is an ImageCache that owns resources.
type Backend interface {
	ImageCache
	io.Closer
}

// Config selects and configures a Backend.
type Config struct {
	Backend  string // "file" or "bolt"
	Dir      string
	BoltPath string
}

// New opens the backend named by cfg.Backend.
func New(cfg Config) (Backend, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileCache(cfg.Dir)
	case "bolt":
		return NewBoltCache(cfg.BoltPath)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}

// KeyName maps a photo id to a storage name. The mapping is injective and
// yields only [0-9a-f], so it is safe on case-insensitive file systems.
func KeyName(key string) string {
	return hex.EncodeToString([]byte(key))
}
