package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

type memUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]entities.User
	owned  map[uint]map[uuid.UUID]struct{}
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users: map[uint]entities.User{},
		owned: map[uint]map[uuid.UUID]struct{}{},
	}
}

func (s *memUserStore) load(id uint) *entities.User {
	user := s.users[id]
	user.AlbumIDs = []uuid.UUID{}
	for albumID := range s.owned[id] {
		user.AlbumIDs = append(user.AlbumIDs, albumID)
	}
	sort.Slice(user.AlbumIDs, func(i, j int) bool {
		return user.AlbumIDs[i].String() < user.AlbumIDs[j].String()
	})
	return &user
}

func (s *memUserStore) FindByID(_ context.Context, id uint) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return nil, entities.ErrUserNotFound
	}
	return s.load(id), nil
}

func (s *memUserStore) FindAll(context.Context) ([]entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.User, 0, len(s.users))
	for id := range s.users {
		out = append(out, *s.load(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, user := range s.users {
		if user.Email == email {
			return s.load(id), nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (s *memUserStore) emailTaken(email string, except uint) bool {
	for id, user := range s.users {
		if id != except && user.Email == email {
			return true
		}
	}
	return false
}

func (s *memUserStore) Create(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(user.Email, 0) {
		return entities.ErrDuplicateEmail
	}
	s.nextID++
	user.ID = s.nextID
	stored := *user
	stored.AlbumIDs = nil
	s.users[user.ID] = stored
	s.owned[user.ID] = toSet(user.AlbumIDs)
	return nil
}

func (s *memUserStore) Save(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return entities.ErrUserNotFound
	}
	if s.emailTaken(user.Email, user.ID) {
		return entities.ErrDuplicateEmail
	}
	stored := *user
	stored.AlbumIDs = nil
	s.users[user.ID] = stored
	s.owned[user.ID] = toSet(user.AlbumIDs)
	return nil
}

func (s *memUserStore) ExistsByID(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok, nil
}

func (s *memUserStore) DeleteByID(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return entities.ErrUserNotFound
	}
	delete(s.users, id)
	delete(s.owned, id)
	return nil
}

func (s *memUserStore) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = map[uint]entities.User{}
	s.owned = map[uint]map[uuid.UUID]struct{}{}
	return nil
}

func (s *memUserStore) AddAlbumIDs(_ context.Context, userID uint, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.owned[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return nil
}

func (s *memUserStore) RemoveAlbumIDs(_ context.Context, userID uint, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.owned[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	for _, id := range ids {
		delete(set, id)
	}
	return nil
}

func (s *memUserStore) ClearAlbumIDs(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.owned[userID]; !ok {
		return entities.ErrUserNotFound
	}
	s.owned[userID] = map[uuid.UUID]struct{}{}
	return nil
}

func (s *memUserStore) AlbumIDs(_ context.Context, userID uint) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return []uuid.UUID{}, nil
	}
	return s.load(userID).AlbumIDs, nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

type memAlbumStore struct {
	mu       sync.Mutex
	albums   map[uuid.UUID]entities.Album
	searches int
}

func newMemAlbumStore(albums ...entities.Album) *memAlbumStore {
	s := &memAlbumStore{albums: map[uuid.UUID]entities.Album{}}
	for _, a := range albums {
		s.albums[a.ID] = a
	}
	return s
}

func (s *memAlbumStore) FindByID(_ context.Context, id uuid.UUID) (*entities.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.albums[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memAlbumStore) FindAllByID(_ context.Context, ids []uuid.UUID) ([]entities.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entities.Album{}
	for _, id := range ids {
		if a, ok := s.albums[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAlbumStore) FindAll(context.Context) ([]entities.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Album, 0, len(s.albums))
	for _, a := range s.albums {
		out = append(out, a)
	}
	return out, nil
}

func (s *memAlbumStore) Save(_ context.Context, album *entities.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums[album.ID] = *album
	return nil
}

func (s *memAlbumStore) SaveAll(_ context.Context, albums []entities.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range albums {
		s.albums[a.ID] = a
	}
	return nil
}

func (s *memAlbumStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.albums, id)
	return nil
}

func (s *memAlbumStore) DeleteAllByID(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.albums, id)
	}
	return nil
}

func (s *memAlbumStore) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums = map[uuid.UUID]entities.Album{}
	return nil
}

// Search matches whole lower-cased words of title and artist only.
func (s *memAlbumStore) Search(_ context.Context, query entities.MultiFieldQuery) ([]entities.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches++
	terms := strings.Fields(strings.ToLower(query.Text))
	out := []entities.Album{}
	for _, a := range s.albums {
		words := strings.Fields(strings.ToLower(a.Title + " " + a.Artist))
	match:
		for _, term := range terms {
			for _, word := range words {
				if term == word {
					out = append(out, a)
					break match
				}
			}
		}
	}
	return out, nil
}

type recordedMutation struct {
	operation string
	albums    int
}

type fakeRecorder struct {
	mu        sync.Mutex
	mutations []recordedMutation
}

func (r *fakeRecorder) LibraryMutation(operation string, albums int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, recordedMutation{operation: operation, albums: albums})
}
