package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// Library operation names reported to the LibraryRecorder.
const (
	OpAddAlbums    = "add"
	OpRemoveAlbums = "remove"
	OpClearAlbums  = "clear"
)

// LibraryService manages the set of catalog albums each user owns.
// It holds no state of its own: every mutation is a single atomic store call.
type LibraryService struct {
	users    UserStore
	albums   AlbumStore
	recorder LibraryRecorder
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(users UserStore, albums AlbumStore) *LibraryService {
	return &LibraryService{users: users, albums: albums, recorder: noopRecorder{}}
}

// SetRecorder installs an observer for library mutations.
func (s *LibraryService) SetRecorder(recorder LibraryRecorder) {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	s.recorder = recorder
}

// AddAlbum adds one album to the user's library. Adding an album that is
// already owned changes nothing.
func (s *LibraryService) AddAlbum(ctx context.Context, userID uint, albumID uuid.UUID) error {
	return s.AddAlbums(ctx, userID, []uuid.UUID{albumID})
}

// AddAlbums adds every listed album to the user's library.
// The albums do not need to exist in the catalog.
func (s *LibraryService) AddAlbums(ctx context.Context, userID uint, albumIDs []uuid.UUID) error {
	if err := s.users.AddAlbumIDs(ctx, userID, albumIDs); err != nil {
		return fmt.Errorf("add albums to user %d: %w", userID, err)
	}
	s.recorder.LibraryMutation(OpAddAlbums, len(albumIDs))
	return nil
}

// RemoveAlbum removes one album. Removing an album that is not owned is a
// no-op.
func (s *LibraryService) RemoveAlbum(ctx context.Context, userID uint, albumID uuid.UUID) error {
	return s.RemoveAlbums(ctx, userID, []uuid.UUID{albumID})
}

// RemoveAlbums removes every listed album in one atomic store call. IDs that
// are not owned are ignored, so repeating the call is a no-op. An unknown
// user yields ErrUserNotFound.
func (s *LibraryService) RemoveAlbums(ctx context.Context, userID uint, albumIDs []uuid.UUID) error {
	if err := s.users.RemoveAlbumIDs(ctx, userID, albumIDs); err != nil {
		return fmt.Errorf("remove albums from user %d: %w", userID, err)
	}
	s.recorder.LibraryMutation(OpRemoveAlbums, len(albumIDs))
	return nil
}

// ClearAlbums empties the user's library.
func (s *LibraryService) ClearAlbums(ctx context.Context, userID uint) error {
	if err := s.users.ClearAlbumIDs(ctx, userID); err != nil {
		return fmt.Errorf("clear albums of user %d: %w", userID, err)
	}
	s.recorder.LibraryMutation(OpClearAlbums, 0)
	return nil
}

// GetAlbums resolves the user's library into catalog albums. IDs that no
// longer exist in the catalog are skipped. Order is not guaranteed.
func (s *LibraryService) GetAlbums(ctx context.Context, userID uint) ([]entities.Album, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get albums of user %d: %w", userID, err)
	}
	if len(user.AlbumIDs) == 0 {
		return []entities.Album{}, nil
	}

	albums, err := s.albums.FindAllByID(ctx, user.AlbumIDs)
	if err != nil {
		return nil, fmt.Errorf("load albums of user %d: %w", userID, err)
	}
	if albums == nil {
		albums = []entities.Album{}
	}
	return albums, nil
}
