package cache

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/timmy/photorama/internal/logger"
	"github.com/timmy/photorama/internal/storage"
)

const mirrorUploadTimeout = 30 * time.Second

// ErrMirrorClosed is returned by Insert after Close.
var ErrMirrorClosed = errors.New("image cache mirror closed")

// Mirror wraps a local Backend and copies every inserted image to object
// storage in the background. Lookups only consult the local backend.
// Objects already present in the bucket are not uploaded again.
type Mirror struct {
	local  Backend
	remote storage.ObjectStorage
	log    *logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewMirror returns a Mirror over local uploading to remote.
func NewMirror(local Backend, remote storage.ObjectStorage) *Mirror {
	return &Mirror{
		local:  local,
		remote: remote,
		log:    logger.GetDefault().WithField(logger.FieldComponent, "cache_mirror"),
	}
}

func (m *Mirror) Lookup(key string) ([]byte, bool) {
	return m.local.Lookup(key)
}

// Insert writes locally and, on success, schedules an upload. Upload
// failures are logged and never reported to the caller.
func (m *Mirror) Insert(key string, data []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrMirrorClosed
	}
	if err := m.local.Insert(key, data); err != nil {
		return err
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.upload(key, data)
	}()
	return nil
}

func (m *Mirror) upload(key string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorUploadTimeout)
	defer cancel()

	name := KeyName(key)
	if exists, err := m.remote.Exists(ctx, name); err != nil {
		m.log.WithError(err).WithField(logger.FieldPhotoID, key).Warn("Failed to check mirrored image, uploading")
	} else if exists {
		return
	}

	start := time.Now()
	err := m.remote.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), http.DetectContentType(data))
	log := m.log.WithFields(logger.Fields{
		logger.FieldPhotoID:    key,
		logger.FieldSize:       len(data),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	})
	if err != nil {
		log.WithError(err).Warn("Failed to mirror cached image")
		return
	}
	log.Debugf("Mirrored cached image to %s", m.remote.GetURL(name))
}

// Close waits for pending uploads, then closes the local backend.
// Calls after the first are no-ops.
func (m *Mirror) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()
	return m.local.Close()
}
