package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// UserStore persists users and their owned album IDs.
// The set primitives must apply each call atomically for the given user.
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindAll(ctx context.Context) ([]entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
	Save(ctx context.Context, user *entities.User) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error

	AddAlbumIDs(ctx context.Context, userID uint, ids []uuid.UUID) error
	RemoveAlbumIDs(ctx context.Context, userID uint, ids []uuid.UUID) error
	ClearAlbumIDs(ctx context.Context, userID uint) error
	AlbumIDs(ctx context.Context, userID uint) ([]uuid.UUID, error)
}

// AlbumStore persists catalog albums and answers free-text queries.
// FindByID returns nil without error when the album does not exist.
type AlbumStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Album, error)
	FindAllByID(ctx context.Context, ids []uuid.UUID) ([]entities.Album, error)
	FindAll(ctx context.Context) ([]entities.Album, error)
	Save(ctx context.Context, album *entities.Album) error
	SaveAll(ctx context.Context, albums []entities.Album) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteAllByID(ctx context.Context, ids []uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Search(ctx context.Context, query entities.MultiFieldQuery) ([]entities.Album, error)
}

// LibraryRecorder observes library mutations.
type LibraryRecorder interface {
	LibraryMutation(operation string, albums int)
}

type noopRecorder struct{}

func (noopRecorder) LibraryMutation(string, int) {}
