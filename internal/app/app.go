// Package app wires configuration into a running photo pipeline.
package app

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/timmy/photorama/internal/cache"
	"github.com/timmy/photorama/internal/config"
	"github.com/timmy/photorama/internal/dispatch"
	"github.com/timmy/photorama/internal/feed"
	"github.com/timmy/photorama/internal/gallery"
	"github.com/timmy/photorama/internal/logger"
	"github.com/timmy/photorama/internal/repository"
	"github.com/timmy/photorama/internal/service"
	"github.com/timmy/photorama/internal/storage"
	"github.com/timmy/photorama/internal/store"
)

// App holds the long-lived components shared by the binaries.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Queue   *dispatch.Queue
	Cache   cache.Backend
	Store   *store.Store
	Gallery *service.GalleryService
	Catalog *repository.PhotoRepository // nil when the database is disabled

	db *gorm.DB
}

// NewLogger builds the process logger from cfg, with LOG_* env overrides.
func NewLogger(cfg config.LogConfig) *logger.Logger {
	lc := logger.DefaultConfig()
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	if cfg.File != "" {
		lc.File = cfg.File
	}
	return logger.New(lc.ApplyEnv())
}

// New builds every component described by cfg. The caller must Close it.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	a := &App{Config: cfg, Logger: log}

	backend, err := cache.New(cache.Config{
		Backend:  cfg.Cache.Backend,
		Dir:      cfg.Cache.Dir,
		BoltPath: cfg.Cache.BoltPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open image cache: %w", err)
	}
	a.Cache = backend

	if cfg.Storage.Enabled {
		objectStorage, err := storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Storage.Type),
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Prefix:    cfg.Storage.Prefix,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		a.Cache = cache.NewMirror(backend, objectStorage)
		log.WithField("bucket", cfg.Storage.Bucket).Info("Image cache mirror enabled")
	}

	var catalog service.PhotoCatalog
	if cfg.Database.Enabled {
		db, err := repository.InitDB(&cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		a.Catalog = repository.NewPhotoRepository(db)
		catalog = a.Catalog
	}

	a.Queue = dispatch.NewQueue(log)
	a.Store = store.New(
		feed.NewClient(cfg.Feed.BaseURL, cfg.Feed.APIKey),
		a.Cache,
		a.Queue,
		store.Config{
			Timeout:        cfg.Feed.Timeout,
			UserAgent:      cfg.Feed.UserAgent,
			DedupeInFlight: cfg.Store.DedupeInFlight,
		},
	)
	a.Gallery = service.NewGalleryService(a.Store, gallery.NewPhotoList(), catalog)

	if cfg.Feed.APIKey == "" {
		log.Warn("feed.api_key is empty; set FLICKR_API_KEY")
	}
	return a, nil
}

// Close stops the callback queue and releases the cache and database.
func (a *App) Close() error {
	var errs []error
	if a.Queue != nil {
		a.Queue.Close()
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
