package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/timmy/photorama/internal/domain"
)

// ErrPhotoNotFound is returned when the catalog has no row for an id.
var ErrPhotoNotFound = errors.New("photo not found in catalog")

// PhotoRepository records every photo seen in a fetched list.
type PhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new PhotoRepository.
func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// SavePhotos upserts photos keyed by id, tagging each with method.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - method: list method the photos were fetched with.
//   - photos: photos to record; an empty slice is a no-op. A repeated id
//     is recorded once, from its last occurrence.
//
// Returns:
//   - error: non-nil if the upsert fails.
func (r *PhotoRepository) SavePhotos(ctx context.Context, method domain.Method, photos []domain.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	// Postgres rejects an upsert that touches the same row twice, so a
	// repeated id keeps only its last occurrence.
	index := make(map[string]int, len(photos))
	records := make([]domain.PhotoRecord, 0, len(photos))
	for _, p := range photos {
		rec := domain.NewPhotoRecord(p, method)
		if i, ok := index[p.ID()]; ok {
			records[i] = rec
			continue
		}
		index[p.ID()] = len(records)
		records = append(records, rec)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "remote_url", "date_taken", "method", "updated_at"}),
	}).CreateInBatches(&records, 100).Error
	if err != nil {
		return fmt.Errorf("failed to save photos: %w", err)
	}
	return nil
}

// GetByID returns the photo with id, or ErrPhotoNotFound.
func (r *PhotoRepository) GetByID(ctx context.Context, id string) (domain.Photo, error) {
	var rec domain.PhotoRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Photo{}, ErrPhotoNotFound
		}
		return domain.Photo{}, fmt.Errorf("failed to get photo %s: %w", id, err)
	}
	return rec.ToPhoto()
}

// ListByMethod returns the most recently taken photos last listed by method.
func (r *PhotoRepository) ListByMethod(ctx context.Context, method domain.Method, limit int) ([]domain.Photo, error) {
	var recs []domain.PhotoRecord
	q := r.db.WithContext(ctx).Where("method = ?", method).Order("date_taken DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	photos := make([]domain.Photo, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.ToPhoto()
		if err != nil {
			continue
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// Count returns the number of catalogued photos.
func (r *PhotoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.PhotoRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}
