package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/timmy/photorama/internal/domain"
	"github.com/timmy/photorama/internal/gallery"
	"github.com/timmy/photorama/internal/logger"
	"github.com/timmy/photorama/internal/repository"
)

var (
	// ErrRefreshInProgress is returned while a previous refresh is still running.
	ErrRefreshInProgress = errors.New("photo refresh already in progress")

	// ErrPhotoNotFound is returned for an id that is neither listed nor catalogued.
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrCatalogDisabled is returned by catalog queries when no catalog is configured.
	ErrCatalogDisabled = errors.New("photo catalog disabled")
)

// PhotoFetcher is the fetch-and-cache pipeline. Completions are delivered
// on the fetcher's callback queue.
type PhotoFetcher interface {
	FetchPhotos(ctx context.Context, method domain.Method, completion func(domain.PhotosResult))
	FetchImage(ctx context.Context, photo domain.Photo, completion func(domain.ImageResult))
}

// PhotoCatalog persists every listed photo.
type PhotoCatalog interface {
	SavePhotos(ctx context.Context, method domain.Method, photos []domain.Photo) error
	GetByID(ctx context.Context, id string) (domain.Photo, error)
	ListByMethod(ctx context.Context, method domain.Method, limit int) ([]domain.Photo, error)
	Count(ctx context.Context) (int64, error)
}

// GalleryService is the display surface's view of the pipeline: it owns
// the current photo list and resolves photos for image requests.
type GalleryService struct {
	fetcher    PhotoFetcher
	list       *gallery.PhotoList
	catalog    PhotoCatalog
	refreshing atomic.Bool
}

// NewGalleryService creates a GalleryService.
// Parameters:
//   - fetcher: photo store.
//   - list: list mutated only from fetcher completions.
//   - catalog: optional; nil disables catalog writes and lookups.
//
// Returns:
//   - *GalleryService: initialized service.
func NewGalleryService(fetcher PhotoFetcher, list *gallery.PhotoList, catalog PhotoCatalog) *GalleryService {
	return &GalleryService{
		fetcher: fetcher,
		list:    list,
		catalog: catalog,
	}
}

// Refresh fetches the list for method and waits for it to be applied.
// On success the list is replaced; on any failure it is cleared and the
// error returned. Only one refresh runs at a time.
func (s *GalleryService) Refresh(ctx context.Context, method domain.Method) (gallery.Snapshot, error) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return gallery.Snapshot{}, ErrRefreshInProgress
	}
	ctx = logger.SetMethod(ctx, string(method))

	// A panic in FetchPhotos must release the guard.
	started := false
	defer func() {
		if !started {
			s.refreshing.Store(false)
		}
	}()

	done := make(chan domain.PhotosResult, 1)
	s.fetcher.FetchPhotos(ctx, method, func(result domain.PhotosResult) {
		result.Match(
			func(photos []domain.Photo) { s.list.Replace(method, photos) },
			func(error) { s.list.Clear() },
		)
		s.refreshing.Store(false)
		done <- result
	})
	started = true

	var result domain.PhotosResult
	select {
	case result = <-done:
	case <-ctx.Done():
		return gallery.Snapshot{}, ctx.Err()
	}

	photos, err := result.Get()
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Photo refresh failed, list cleared")
		return s.list.Snapshot(), err
	}

	if s.catalog != nil {
		if err := s.catalog.SavePhotos(ctx, method, photos); err != nil {
			logger.FromContext(ctx).WithError(err).Warn("Failed to record photos in catalog")
		}
	}

	snap := s.list.Snapshot()
	logger.With(logger.Fields{}).WithCount(len(snap.Photos)).Info(ctx, "Photo list refreshed")
	return snap, nil
}

// Snapshot returns the current list.
func (s *GalleryService) Snapshot() gallery.Snapshot {
	return s.list.Snapshot()
}

// CatalogPhotos returns up to limit catalogued photos last listed by
// method, newest first. A limit of 0 means no limit.
func (s *GalleryService) CatalogPhotos(ctx context.Context, method domain.Method, limit int) ([]domain.Photo, error) {
	if s.catalog == nil {
		return nil, ErrCatalogDisabled
	}
	return s.catalog.ListByMethod(ctx, method, limit)
}

// CatalogCount returns the number of catalogued photos.
func (s *GalleryService) CatalogCount(ctx context.Context) (int64, error) {
	if s.catalog == nil {
		return 0, ErrCatalogDisabled
	}
	return s.catalog.Count(ctx)
}

// Photo resolves id through the current list, then the catalog. The
// index is the photo's current position in the list, or -1.
func (s *GalleryService) Photo(ctx context.Context, id string) (domain.Photo, int, error) {
	photo, err := s.resolve(ctx, id)
	if err != nil {
		return domain.Photo{}, -1, err
	}
	idx, ok := s.list.CurrentIndexOf(photo)
	if !ok {
		idx = -1
	}
	return photo, idx, nil
}

// Image returns the image for id together with the photo's position in
// the list at the time the image became available (-1 if not listed).
func (s *GalleryService) Image(ctx context.Context, id string) (domain.Image, int, error) {
	photo, err := s.resolve(ctx, id)
	if err != nil {
		return domain.Image{}, -1, err
	}
	ctx = logger.SetPhotoID(ctx, id)

	type delivered struct {
		result domain.ImageResult
		index  int
	}
	done := make(chan delivered, 1)
	s.fetcher.FetchImage(ctx, photo, func(result domain.ImageResult) {
		// The list may have changed while the image was loading.
		idx := -1
		if result.IsSuccess() {
			if i, ok := s.list.CurrentIndexOf(photo); ok {
				idx = i
			}
		}
		done <- delivered{result: result, index: idx}
	})

	select {
	case d := <-done:
		img, err := d.result.Get()
		return img, d.index, err
	case <-ctx.Done():
		return domain.Image{}, -1, ctx.Err()
	}
}

func (s *GalleryService) resolve(ctx context.Context, id string) (domain.Photo, error) {
	if p, ok := s.list.Find(id); ok {
		return p, nil
	}
	if s.catalog == nil {
		return domain.Photo{}, ErrPhotoNotFound
	}
	p, err := s.catalog.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPhotoNotFound) {
		return domain.Photo{}, ErrPhotoNotFound
	}
	return p, err
}
