package feed

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/timmy/photorama/internal/domain"
)

// DateTakenLayout is the feed's date_taken format. The feed does not
// carry a zone; values are interpreted as UTC.
const DateTakenLayout = "2006-01-02 15:04:05"

type envelope struct {
	Stat    string           `json:"stat"`
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Photos  *photosContainer `json:"photos"`
}

type photosContainer struct {
	Photo *[]json.RawMessage `json:"photo"`
}

type photoEntry struct {
	ID        *string `json:"id"`
	Title     *string `json:"title"`
	DateTaken *string `json:"datetaken"`
	URLH      *string `json:"url_h"`
}

// ParsePhotoList decodes a feed list response.
//
// Entries missing id, title, datetaken or url_h, or carrying a date or URL
// that does not parse, are skipped; the remaining entries keep their
// order. If every entry is skipped the result is an empty list, not an
// error. A *domain.ParseError is returned when data is not a JSON object,
// when photos or photos.photo is absent, or when the feed reports
// stat "fail".
func ParsePhotoList(data []byte) ([]domain.Photo, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &domain.ParseError{Reason: "invalid JSON envelope", Err: err}
	}
	if env.Stat == "fail" {
		return nil, &domain.ParseError{Reason: "feed reported failure (code " + strconv.Itoa(env.Code) + "): " + env.Message}
	}
	if env.Photos == nil {
		return nil, &domain.ParseError{Reason: `missing "photos"`}
	}
	if env.Photos.Photo == nil {
		return nil, &domain.ParseError{Reason: `missing "photos.photo"`}
	}

	raw := *env.Photos.Photo
	photos := make([]domain.Photo, 0, len(raw))
	for _, item := range raw {
		if p, ok := parseEntry(item); ok {
			photos = append(photos, p)
		}
	}
	return photos, nil
}

func parseEntry(item json.RawMessage) (domain.Photo, bool) {
	var e photoEntry
	if err := json.Unmarshal(item, &e); err != nil {
		return domain.Photo{}, false
	}
	if e.ID == nil || e.Title == nil || e.DateTaken == nil || e.URLH == nil {
		return domain.Photo{}, false
	}

	taken, err := time.ParseInLocation(DateTakenLayout, *e.DateTaken, time.UTC)
	if err != nil {
		return domain.Photo{}, false
	}
	u, err := url.Parse(*e.URLH)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.Photo{}, false
	}

	p, err := domain.NewPhoto(*e.ID, *e.Title, u, taken)
	if err != nil {
		return domain.Photo{}, false
	}
	return p, true
}
