package domain

import (
	"errors"
	"net/url"
	"time"
)

// Photo is a single record from the photo feed.
// A Photo is immutable once constructed; accessors return copies.
type Photo struct {
	id        string
	title     string
	remoteURL url.URL
	dateTaken time.Time
}

// NewPhoto creates a Photo.
// Parameters:
//   - id: stable feed identifier, also used as the image cache key.
//   - title: photo title (may be empty).
//   - remoteURL: location of the full image bytes.
//   - dateTaken: capture timestamp reported by the feed.
//
// Returns:
//   - Photo: constructed photo.
//   - error: non-nil if id is empty or remoteURL is nil.
func NewPhoto(id, title string, remoteURL *url.URL, dateTaken time.Time) (Photo, error) {
	if id == "" {
		return Photo{}, errors.New("photo id cannot be empty")
	}
	if remoteURL == nil {
		return Photo{}, errors.New("photo remote URL cannot be nil")
	}
	return Photo{
		id:        id,
		title:     title,
		remoteURL: *remoteURL,
		dateTaken: dateTaken,
	}, nil
}

func (p Photo) ID() string {
	return p.id
}

func (p Photo) Title() string {
	return p.title
}

// RemoteURL returns a copy of the image location.
func (p Photo) RemoteURL() *url.URL {
	u := p.remoteURL
	return &u
}

func (p Photo) DateTaken() time.Time {
	return p.dateTaken
}

// Equal reports whether two photos refer to the same feed record.
func (p Photo) Equal(other Photo) bool {
	return p.id == other.id
}
