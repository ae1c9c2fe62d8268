// Package store fetches photo lists and images, caching image bytes and
// delivering every completion on a serial callback queue.
package store

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"github.com/timmy/photorama/internal/cache"
	"github.com/timmy/photorama/internal/domain"
	"github.com/timmy/photorama/internal/feed"
	"github.com/timmy/photorama/internal/logger"
)

// Dispatcher runs funcs off the caller's goroutine. It reports false when
// fn was not accepted.
type Dispatcher interface {
	Dispatch(fn func()) bool
}

// Config holds store configuration.
type Config struct {
	Timeout   time.Duration // per-request transport timeout; 0 means none
	UserAgent string

	// DedupeInFlight collapses concurrent image downloads for the same
	// photo id into one request.
	DedupeInFlight bool
}

// Store is the fetch-and-cache pipeline.
type Store struct {
	http   *resty.Client
	feed   *feed.Client
	cache  cache.ImageCache
	queue  Dispatcher
	dedupe bool
	group  singleflight.Group
}

// New creates a Store.
// Parameters:
//   - feedClient: builds list URLs for the remote feed.
//   - imageCache: image byte cache, consulted before every download.
//   - queue: callback queue every completion is delivered on.
//   - cfg: transport and dedup settings.
//
// Returns:
//   - *Store: ready to use store.
func New(feedClient *feed.Client, imageCache cache.ImageCache, queue Dispatcher, cfg Config) *Store {
	client := resty.New()
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Store{
		http:   client,
		feed:   feedClient,
		cache:  imageCache,
		queue:  queue,
		dedupe: cfg.DedupeInFlight,
	}
}

// FetchPhotos lists photos for method and calls completion on the queue.
//
// The list URL is built before FetchPhotos returns, so an unknown method
// panics on the caller's goroutine. Neither the cache nor any photo list
// is touched.
func (s *Store) FetchPhotos(ctx context.Context, method domain.Method, completion func(domain.PhotosResult)) {
	u := s.feed.BuildListURL(method)
	ctx = logger.SetMethod(logger.SetComponent(ctx, "store"), string(method))

	go func() {
		result := s.fetchPhotos(ctx, u)
		if result.IsFailure() {
			logger.FromContext(ctx).WithError(result.Err()).Debug("Photo list fetch failed")
		}
		s.deliver(ctx, func() { completion(result) })
	}()
}

func (s *Store) fetchPhotos(ctx context.Context, u *url.URL) domain.PhotosResult {
	start := time.Now()
	resp, err := s.http.R().SetContext(ctx).Get(u.String())
	if err != nil {
		return domain.Failure[[]domain.Photo](transportError(u, err))
	}

	logResponse(ctx, resp, time.Since(start))

	photos, err := feed.ParsePhotoList(resp.Body())
	if err != nil {
		return domain.Failure[[]domain.Photo](err)
	}
	logger.With(logger.Fields{}).WithCount(len(photos)).Debug(ctx, "Parsed photo list")
	return domain.Success(photos)
}

// FetchImage returns the image for photo through completion, on the queue.
//
// A cache hit is delivered without touching the network; cached bytes
// that no longer decode are treated as a miss. On a miss the image is
// downloaded, decoded and inserted into the cache before completion runs.
// A decode failure caches nothing.
func (s *Store) FetchImage(ctx context.Context, photo domain.Photo, completion func(domain.ImageResult)) {
	id := photo.ID()
	ctx = logger.SetPhotoID(logger.SetComponent(ctx, "store"), id)

	if data, ok := s.cache.Lookup(id); ok {
		img, err := decodeImage(id, data)
		if err == nil {
			s.deliver(ctx, func() { completion(domain.Success(img)) })
			return
		}
		logger.FromContext(ctx).WithError(err).Warn("Cached image no longer decodes, refetching")
	}

	go func() {
		result := s.loadImage(ctx, photo)
		s.deliver(ctx, func() { completion(result) })
	}()
}

func (s *Store) loadImage(ctx context.Context, photo domain.Photo) domain.ImageResult {
	if !s.dedupe {
		return s.downloadImage(ctx, photo)
	}
	// The shared download is not bound to any one caller; each caller stops
	// waiting on its own cancellation.
	ch := s.group.DoChan(photo.ID(), func() (interface{}, error) {
		return s.downloadImage(context.WithoutCancel(ctx), photo), nil
	})
	select {
	case res := <-ch:
		return res.Val.(domain.ImageResult)
	case <-ctx.Done():
		return domain.Failure[domain.Image](transportError(photo.RemoteURL(), ctx.Err()))
	}
}

func (s *Store) downloadImage(ctx context.Context, photo domain.Photo) domain.ImageResult {
	u := photo.RemoteURL()
	start := time.Now()

	resp, err := s.http.R().SetContext(ctx).Get(u.String())
	if err != nil {
		terr := transportError(u, err)
		logger.FromContext(ctx).WithError(terr).Warn("Image fetch failed")
		return domain.Failure[domain.Image](terr)
	}

	data := resp.Body()
	img, err := decodeImage(photo.ID(), data)
	if err != nil {
		logger.With(logger.Fields{logger.FieldURL: feed.RedactURL(u)}).
			WithStatus(resp.StatusCode()).
			WithSize(len(data)).
			Warn(ctx, "Downloaded bytes are not an image")
		return domain.Failure[domain.Image](err)
	}

	if err := s.cache.Insert(photo.ID(), data); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to cache image")
	}

	logger.With(logger.Fields{}).
		WithSize(len(data)).
		WithDuration(time.Since(start).Milliseconds()).
		Debug(ctx, "Image fetched")
	return domain.Success(img)
}

func (s *Store) deliver(ctx context.Context, fn func()) {
	if !s.queue.Dispatch(fn) {
		logger.CtxWarn(ctx, "Callback queue closed, completion dropped")
	}
}

// transportError builds a TransportError without leaking the API key:
// the *url.Error wrapper, which repeats the full URL, is stripped.
func transportError(u *url.URL, err error) *domain.TransportError {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	return &domain.TransportError{URL: feed.RedactURL(u), Err: err}
}

// logResponse logs the status line and headers of a list response.
func logResponse(ctx context.Context, resp *resty.Response, elapsed time.Duration) {
	code := resp.StatusCode()
	logger.With(logger.Fields{
		logger.FieldStatus:     code,
		logger.FieldDurationMs: elapsed.Milliseconds(),
		"status_text":          http.StatusText(code),
		"headers":              resp.Header(),
	}).Debug(ctx, "Photo list response received")
}
