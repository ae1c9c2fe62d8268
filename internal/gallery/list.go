// Package gallery holds the ordered photo list shown to the display surface.
package gallery

import (
	"sync"

	"github.com/timmy/photorama/internal/domain"
)

// PhotoList is the ordered list currently displayed. It is replaced
// wholesale on a successful fetch and cleared wholesale on failure.
// Every mutation bumps Version.
type PhotoList struct {
	mu      sync.RWMutex
	photos  []domain.Photo
	method  domain.Method
	version uint64
}

func NewPhotoList() *PhotoList {
	return &PhotoList{}
}

func (l *PhotoList) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.photos)
}

// ItemAt returns the photo at index i. It panics when i is out of range,
// like indexing a slice.
func (l *PhotoList) ItemAt(i int) domain.Photo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.photos[i]
}

// CurrentIndexOf returns the position of photo (matched by id) in the
// current list. Async consumers must use it instead of an index captured
// before the list could have changed.
func (l *PhotoList) CurrentIndexOf(photo domain.Photo) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, p := range l.photos {
		if p.Equal(photo) {
			return i, true
		}
	}
	return -1, false
}

// Find returns the photo with the given id.
func (l *PhotoList) Find(id string) (domain.Photo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.photos {
		if p.ID() == id {
			return p, true
		}
	}
	return domain.Photo{}, false
}

// Replace swaps in photos, listed by method.
func (l *PhotoList) Replace(method domain.Method, photos []domain.Photo) {
	cp := make([]domain.Photo, len(photos))
	copy(cp, photos)

	l.mu.Lock()
	l.photos = cp
	l.method = method
	l.version++
	l.mu.Unlock()
}

func (l *PhotoList) Clear() {
	l.mu.Lock()
	l.photos = nil
	l.method = ""
	l.version++
	l.mu.Unlock()
}

func (l *PhotoList) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Snapshot is a consistent copy of the list.
type Snapshot struct {
	Photos  []domain.Photo
	Method  domain.Method
	Version uint64
}

func (l *PhotoList) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cp := make([]domain.Photo, len(l.photos))
	copy(cp, l.photos)
	return Snapshot{Photos: cp, Method: l.method, Version: l.version}
}
