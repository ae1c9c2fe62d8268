package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/photorama/internal/cache"
	"github.com/timmy/photorama/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Feed:  config.FeedConfig{BaseURL: "http://127.0.0.1:1/rest", APIKey: "k"},
		Cache: config.CacheConfig{Backend: "file", Dir: filepath.Join(dir, "images")},
		Database: config.DatabaseConfig{
			Enabled:     true,
			Driver:      "sqlite",
			Path:        filepath.Join(dir, "photorama.db"),
			AutoMigrate: true,
		},
	}
}

func TestNewWiresComponents(t *testing.T) {
	a, err := New(testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Gallery)
	assert.NotNil(t, a.Catalog)
	assert.IsType(t, &cache.FileCache{}, a.Cache)
}

func TestNewWithoutDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Enabled = false
	cfg.Cache = config.CacheConfig{Backend: "bolt", BoltPath: filepath.Join(t.TempDir(), "c.db")}

	a, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, a.Catalog)
	assert.IsType(t, &cache.BoltCache{}, a.Cache)
	assert.NoError(t, a.Close())
}

func TestNewWithMirror(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Enabled = false
	cfg.Storage = config.StorageConfig{
		Enabled:   true,
		Endpoint:  "http://localhost:9000",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "photos",
	}

	a, err := New(cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.IsType(t, &cache.Mirror{}, a.Cache)
}

func TestNewBadCacheBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "redis"
	_, err := New(cfg, nil)
	assert.Error(t, err)
}
