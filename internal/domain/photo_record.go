package domain

import (
	"fmt"
	"net/url"
	"time"
)

// PhotoRecord is the catalog row for a photo seen in a fetched list.
type PhotoRecord struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Title     string    `gorm:"type:text" json:"title"`
	RemoteURL string    `gorm:"type:text;not null" json:"remote_url"`
	DateTaken time.Time `json:"date_taken"`
	Method    Method    `gorm:"type:text;index:idx_photos_method" json:"method"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for PhotoRecord.
func (PhotoRecord) TableName() string {
	return "photos"
}

// NewPhotoRecord builds a catalog row for photo as listed by method.
func NewPhotoRecord(photo Photo, method Method) PhotoRecord {
	return PhotoRecord{
		ID:        photo.ID(),
		Title:     photo.Title(),
		RemoteURL: photo.RemoteURL().String(),
		DateTaken: photo.DateTaken(),
		Method:    method,
	}
}

// ToPhoto converts the row back into a Photo.
func (r PhotoRecord) ToPhoto() (Photo, error) {
	u, err := url.Parse(r.RemoteURL)
	if err != nil {
		return Photo{}, fmt.Errorf("invalid remote URL for photo %s: %w", r.ID, err)
	}
	return NewPhoto(r.ID, r.Title, u, r.DateTaken)
}
