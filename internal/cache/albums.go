package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

const albumKeyPrefix = "album:"

// AlbumStore is the catalog store being decorated.
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

// CachedAlbumStore caches single-album lookups. Writes go to the underlying store
// first and then evict the affected keys. Cache failures are logged and
// never fail the request.
//
// Every write bumps a generation under mu before evicting. A read-through
// fill only lands when no write happened since its store read started, so a
// slow reader cannot re-cache a value that a concurrent write replaced.
type CachedAlbumStore struct {
	store AlbumStore
	cache Cache
	ttl   time.Duration

	mu         sync.Mutex
	generation uint64
}

func NewCachedAlbumStore(store AlbumStore, cache Cache, ttl time.Duration) *CachedAlbumStore {
	return &CachedAlbumStore{store: store, cache: cache, ttl: ttl}
}

func albumKey(id uuid.UUID) string {
	return albumKeyPrefix + id.String()
}

func (s *CachedAlbumStore) FindByID(ctx context.Context, id uuid.UUID) (*entities.Album, error) {
	var cached entities.Album
	found, err := s.cache.Get(ctx, albumKey(id), &cached)
	if err != nil {
		log.Warn().Err(err).Str("album_id", id.String()).Msg("Album cache read failed")
	}
	if found {
		return &cached, nil
	}

	gen := s.currentGeneration()
	album, err := s.store.FindByID(ctx, id)
	if err != nil || album == nil {
		return album, err
	}
	s.put(ctx, gen, *album)
	return album, nil
}

func (s *CachedAlbumStore) FindAllByID(ctx context.Context, ids []uuid.UUID) ([]entities.Album, error) {
	albums := make([]entities.Album, 0, len(ids))
	var missing []uuid.UUID
	for _, id := range ids {
		var cached entities.Album
		found, err := s.cache.Get(ctx, albumKey(id), &cached)
		if err != nil {
			log.Warn().Err(err).Str("album_id", id.String()).Msg("Album cache read failed")
		}
		if found {
			albums = append(albums, cached)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return albums, nil
	}

	gen := s.currentGeneration()
	loaded, err := s.store.FindAllByID(ctx, missing)
	if err != nil {
		return nil, err
	}
	s.put(ctx, gen, loaded...)
	return append(albums, loaded...), nil
}

func (s *CachedAlbumStore) FindAll(ctx context.Context) ([]entities.Album, error) {
	return s.store.FindAll(ctx)
}

func (s *CachedAlbumStore) Search(ctx context.Context, query entities.MultiFieldQuery) ([]entities.Album, error) {
	return s.store.Search(ctx, query)
}

func (s *CachedAlbumStore) Save(ctx context.Context, album *entities.Album) error {
	if err := s.store.Save(ctx, album); err != nil {
		return err
	}
	s.evict(ctx, album.ID)
	return nil
}

func (s *CachedAlbumStore) SaveAll(ctx context.Context, albums []entities.Album) error {
	if err := s.store.SaveAll(ctx, albums); err != nil {
		return err
	}
	ids := make([]uuid.UUID, len(albums))
	for i, album := range albums {
		ids[i] = album.ID
	}
	s.evict(ctx, ids...)
	return nil
}

func (s *CachedAlbumStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

func (s *CachedAlbumStore) DeleteAllByID(ctx context.Context, ids []uuid.UUID) error {
	if err := s.store.DeleteAllByID(ctx, ids); err != nil {
		return err
	}
	s.evict(ctx, ids...)
	return nil
}

func (s *CachedAlbumStore) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if err := s.cache.DeletePattern(ctx, albumKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("Album cache flush failed")
	}
	return nil
}

func (s *CachedAlbumStore) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// put caches albums read at generation gen, unless a write has happened
// since.
func (s *CachedAlbumStore) put(ctx context.Context, gen uint64, albums ...entities.Album) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}
	for _, album := range albums {
		if err := s.cache.Set(ctx, albumKey(album.ID), album, s.ttl); err != nil {
			log.Warn().Err(err).Str("album_id", album.ID.String()).Msg("Album cache write failed")
		}
	}
}

func (s *CachedAlbumStore) evict(ctx context.Context, ids ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = albumKey(id)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Int("keys", len(keys)).Msg("Album cache eviction failed")
	}
}
