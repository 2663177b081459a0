// Package users provides the ownership store: users and the set of catalog
// album IDs each of them owns.
//
// Set mutations are single calls that run inside one transaction, so a batch
// add or remove is applied in full or not at all and concurrent writers on
// the same user never lose each other's updates.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	err := repo.AddAlbumIDs(ctx, userID, []uuid.UUID{albumID})
package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves a user and its album IDs.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	if user.AlbumIDs, err = r.AlbumIDs(ctx, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves a user by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	if user.AlbumIDs, err = r.AlbumIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll retrieves every user with its album IDs.
func (r *Repository) FindAll(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	var rows []entities.UserAlbum
	if err := r.db.WithContext(ctx).Order("album_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	owned := make(map[uint][]uuid.UUID, len(users))
	for _, row := range rows {
		id, err := uuid.Parse(row.AlbumID)
		if err != nil {
			return nil, fmt.Errorf("user %d has malformed album id %q: %w", row.UserID, row.AlbumID, err)
		}
		owned[row.UserID] = append(owned[row.UserID], id)
	}

	for i := range users {
		users[i].AlbumIDs = nonNil(owned[users[i].ID])
	}
	return users, nil
}

// ExistsByID reports whether a user with the given ID exists.
func (r *Repository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user together with its initial album IDs.
// The ID is assigned by the database.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateError(err)
		}
		return insertAlbumIDs(tx, user.ID, user.AlbumIDs)
	})
}

// Save replaces the name, email and album IDs of an existing user.
// It never creates a user: an unknown ID yields ErrUserNotFound.
func (r *Repository) Save(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{"name": user.Name, "email": user.Email})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return entities.ErrUserNotFound
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&entities.UserAlbum{}).Error; err != nil {
			return err
		}
		return insertAlbumIDs(tx, user.ID, user.AlbumIDs)
	})
}

// DeleteByID removes a user and its library.
func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entities.UserAlbum{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrUserNotFound
		}
		return nil
	})
}

// DeleteAll removes every user and every library entry.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := global.Delete(&entities.UserAlbum{}).Error; err != nil {
			return err
		}
		return global.Delete(&entities.User{}).Error
	})
}

// AlbumIDs returns the album IDs owned by a user, sorted.
func (r *Repository) AlbumIDs(ctx context.Context, userID uint) ([]uuid.UUID, error) {
	var raw []string
	err := r.db.WithContext(ctx).Model(&entities.UserAlbum{}).
		Where("user_id = ?", userID).
		Order("album_id ASC").
		Pluck("album_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("user %d has malformed album id %q: %w", userID, s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AddAlbumIDs inserts album IDs into a user's set. IDs already present are
// left untouched.
func (r *Repository) AddAlbumIDs(ctx context.Context, userID uint, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		return insertAlbumIDs(tx, userID, ids)
	})
}

// RemoveAlbumIDs deletes album IDs from a user's set. Absent IDs are ignored.
func (r *Repository) RemoveAlbumIDs(ctx context.Context, userID uint, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		keys := uniqueKeys(ids)
		if len(keys) == 0 {
			return nil
		}
		return tx.Where("user_id = ? AND album_id IN ?", userID, keys).
			Delete(&entities.UserAlbum{}).Error
	})
}

// ClearAlbumIDs empties a user's set.
func (r *Repository) ClearAlbumIDs(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&entities.UserAlbum{}).Error
	})
}

func requireUser(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&entities.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

func insertAlbumIDs(tx *gorm.DB, userID uint, ids []uuid.UUID) error {
	keys := uniqueKeys(ids)
	if len(keys) == 0 {
		return nil
	}

	rows := make([]entities.UserAlbum, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, entities.UserAlbum{UserID: userID, AlbumID: key})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// uniqueKeys converts IDs to their stored string form, dropping duplicates
// and the nil UUID.
func uniqueKeys(ids []uuid.UUID) []string {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, id.String())
	}
	sort.Strings(keys)
	return keys
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entities.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed: users.email"):
		return entities.ErrDuplicateEmail
	default:
		return err
	}
}
