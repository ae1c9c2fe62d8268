package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/timmy/photorama/internal/logger"
)

// FileCache stores one file per photo id in a flat directory.
type FileCache struct {
	dir string
	mu  sync.RWMutex
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, KeyName(key))
}

// Lookup reads the file for key. Read errors other than a missing file
// are logged and reported as a miss.
func (c *FileCache) Lookup(key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.GetDefault().WithError(err).
				WithField(logger.FieldPhotoID, key).
				Warn("Failed to read cached image")
		}
		return nil, false
	}
	return data, true
}

// Insert writes data to a temp file in the cache directory and renames it
// over the final name, so readers never see a partial file.
func (c *FileCache) Insert(key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp, err := os.CreateTemp(c.dir, ".insert-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cached image: %w", err)
	}
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit cached image: %w", err)
	}
	return nil
}

func (c *FileCache) Close() error {
	return nil
}
