package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/timmy/photorama/internal/domain"
	"github.com/timmy/photorama/internal/logger"
)

// WarmStats summarizes a cache warm run.
type WarmStats struct {
	Total     int64
	Fetched   int64
	Failed    int64
	Failures  map[string]error // photo id -> error
	StartTime time.Time
	EndTime   time.Time
}

// Warm refreshes the list for method and then fetches every listed image
// through the store with the given number of workers. Per-photo failures
// are collected, not returned; only a failed refresh is an error.
func (s *GalleryService) Warm(ctx context.Context, method domain.Method, workers int) (*WarmStats, error) {
	if workers <= 0 {
		workers = 4
	}

	snap, err := s.Refresh(ctx, method)
	if err != nil {
		return nil, err
	}

	stats := &WarmStats{
		Total:     int64(len(snap.Photos)),
		Failures:  make(map[string]error),
		StartTime: time.Now(),
	}
	var failuresMu sync.Mutex

	items := make(chan domain.Photo, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for photo := range items {
				if err := s.fetchOne(ctx, photo); err != nil {
					atomic.AddInt64(&stats.Failed, 1)
					failuresMu.Lock()
					stats.Failures[photo.ID()] = err
					failuresMu.Unlock()
					logger.FromContext(ctx).WithField(logger.FieldPhotoID, photo.ID()).
						WithError(err).Warn("Failed to warm image")
					continue
				}
				atomic.AddInt64(&stats.Fetched, 1)
			}
		}()
	}

feed:
	for _, photo := range snap.Photos {
		select {
		case items <- photo:
		case <-ctx.Done():
			break feed
		}
	}
	close(items)
	wg.Wait()

	stats.EndTime = time.Now()
	logger.With(logger.Fields{
		"total":                stats.Total,
		"fetched":              stats.Fetched,
		"failed":               stats.Failed,
		logger.FieldDurationMs: stats.EndTime.Sub(stats.StartTime).Milliseconds(),
	}).Info(ctx, "Cache warm completed")

	return stats, ctx.Err()
}

func (s *GalleryService) fetchOne(ctx context.Context, photo domain.Photo) error {
	done := make(chan error, 1)
	s.fetcher.FetchImage(ctx, photo, func(r domain.ImageResult) { done <- r.Err() })
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
