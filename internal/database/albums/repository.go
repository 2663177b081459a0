// Package albums provides the catalog store: album documents keyed by UUID
// plus free-text search over their fields.
package albums

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// Repository handles all album database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new albums repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID returns the album or nil when it does not exist.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Album, error) {
	var album entities.Album
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&album).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// FindAllByID returns the albums that exist among ids. Missing ids are
// skipped.
func (r *Repository) FindAllByID(ctx context.Context, ids []uuid.UUID) ([]entities.Album, error) {
	albums := []entities.Album{}
	if len(ids) == 0 {
		return albums, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", idStrings(ids)).
		Order("title ASC").
		Find(&albums).Error
	return albums, err
}

// FindAll returns the whole catalog ordered by title.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Album, error) {
	albums := []entities.Album{}
	err := r.db.WithContext(ctx).Order("title ASC").Find(&albums).Error
	return albums, err
}

// Save inserts the album or overwrites the stored one with the same ID.
func (r *Repository) Save(ctx context.Context, album *entities.Album) error {
	return upsert(r.db.WithContext(ctx), []entities.Album{*album})
}

// SaveAll upserts a batch in a single transaction.
func (r *Repository) SaveAll(ctx context.Context, albums []entities.Album) error {
	if len(albums) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsert(tx, albums)
	})
}

// DeleteByID removes an album. Deleting a missing album is not an error.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&entities.Album{}).Error
}

// DeleteAllByID removes every listed album that exists.
func (r *Repository) DeleteAllByID(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", idStrings(ids)).Delete(&entities.Album{}).Error
}

// DeleteAll empties the catalog.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Album{}).Error
}

// Count returns the number of albums in the catalog.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Album{}).Count(&count).Error
	return count, err
}

func upsert(tx *gorm.DB, albums []entities.Album) error {
	for i := range albums {
		if !albums[i].HasID() {
			return fmt.Errorf("album %q has no id", albums[i].Title)
		}
		albums[i].SearchText = searchText(albums[i])
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "artist", "release_year", "cover_url", "search_text", "updated_at"}),
	}).Create(&albums).Error
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
