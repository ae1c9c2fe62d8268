package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/timmy/photorama/internal/logger"
)

const imageBucket = "images"

// BoltCache stores images in a single bbolt file.
type BoltCache struct {
	db *bolt.DB
}

// NewBoltCache opens (or creates) the database at path.
func NewBoltCache(path string) (*BoltCache, error) {
	if path == "" {
		return nil, errors.New("bolt cache path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(imageBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltCache{db: db}, nil
}

// Lookup copies the stored value out of the read transaction.
func (c *BoltCache) Lookup(key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	var (
		data  []byte
		found bool
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(imageBucket)).Get([]byte(KeyName(key)))
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
			found = true
		}
		return nil
	})
	if err != nil {
		logger.GetDefault().WithError(err).
			WithField(logger.FieldPhotoID, key).
			Warn("Failed to read cached image")
		return nil, false
	}
	return data, found
}

func (c *BoltCache) Insert(key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if data == nil {
		data = []byte{}
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(imageBucket)).Put([]byte(KeyName(key)), data); err != nil {
			return fmt.Errorf("failed to update image bucket: %w", err)
		}
		return nil
	})
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}
