package cache

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("connection refused")
	}
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

type countingStore struct {
	albums      map[uuid.UUID]entities.Album
	findByID    int
	findAllByID int
}

func newCountingStore(albums ...entities.Album) *countingStore {
	s := &countingStore{albums: map[uuid.UUID]entities.Album{}}
	for _, a := range albums {
		s.albums[a.ID] = a
	}
	return s
}

func (s *countingStore) FindByID(_ context.Context, id uuid.UUID) (*entities.Album, error) {
	s.findByID++
	a, ok := s.albums[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *countingStore) FindAllByID(_ context.Context, ids []uuid.UUID) ([]entities.Album, error) {
	s.findAllByID++
	var out []entities.Album
	for _, id := range ids {
		if a, ok := s.albums[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *countingStore) FindAll(context.Context) ([]entities.Album, error) {
	var out []entities.Album
	for _, a := range s.albums {
		out = append(out, a)
	}
	return out, nil
}

func (s *countingStore) Save(_ context.Context, album *entities.Album) error {
	s.albums[album.ID] = *album
	return nil
}

func (s *countingStore) SaveAll(_ context.Context, albums []entities.Album) error {
	for _, a := range albums {
		s.albums[a.ID] = a
	}
	return nil
}

func (s *countingStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(s.albums, id)
	return nil
}

func (s *countingStore) DeleteAllByID(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(s.albums, id)
	}
	return nil
}

func (s *countingStore) DeleteAll(context.Context) error {
	s.albums = map[uuid.UUID]entities.Album{}
	return nil
}

func (s *countingStore) Search(context.Context, entities.MultiFieldQuery) ([]entities.Album, error) {
	return nil, nil
}

func TestCachedAlbumStore_FindByID_ReadsThrough(t *testing.T) {
	album := entities.Album{ID: uuid.New(), Title: "Dookie", Artist: "Green Day", ReleaseYear: "1994"}
	store := newCountingStore(album)
	cache := newMemoryCache()
	cached := NewCachedAlbumStore(store, cache, time.Minute)
	ctx := context.Background()

	first, err := cached.FindByID(ctx, album.ID)
	require.NoError(t, err)
	second, err := cached.FindByID(ctx, album.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, store.findByID)
	assert.Equal(t, album.Title, first.Title)
	assert.Equal(t, album, *second)
}

func TestCachedAlbumStore_FindByID_MissIsNotCached(t *testing.T) {
	store := newCountingStore()
	cache := newMemoryCache()
	cached := NewCachedAlbumStore(store, cache, time.Minute)
	id := uuid.New()

	album, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, album)
	assert.False(t, cache.has(albumKey(id)))
}

func TestCachedAlbumStore_FindByID_FallsBackWhenCacheFails(t *testing.T) {
	album := entities.Album{ID: uuid.New(), Title: "Dookie", Artist: "Green Day"}
	store := newCountingStore(album)
	cache := newMemoryCache()
	cache.failGet = true
	cached := NewCachedAlbumStore(store, cache, time.Minute)

	found, err := cached.FindByID(context.Background(), album.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, album.ID, found.ID)
}

func TestCachedAlbumStore_FindAllByID_LoadsOnlyMisses(t *testing.T) {
	a := entities.Album{ID: uuid.New(), Title: "Nevermind", Artist: "Nirvana"}
	b := entities.Album{ID: uuid.New(), Title: "Ten", Artist: "Pearl Jam"}
	store := newCountingStore(a, b)
	cache := newMemoryCache()
	cached := NewCachedAlbumStore(store, cache, time.Minute)
	ctx := context.Background()

	_, err := cached.FindByID(ctx, a.ID)
	require.NoError(t, err)

	albums, err := cached.FindAllByID(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, albums, 2)
	assert.Equal(t, 1, store.findAllByID)

	albums, err = cached.FindAllByID(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, albums, 2)
	assert.Equal(t, 1, store.findAllByID)
}

func TestCachedAlbumStore_WritesEvict(t *testing.T) {
	album := entities.Album{ID: uuid.New(), Title: "Dookie", Artist: "Green Day"}
	store := newCountingStore(album)
	cache := newMemoryCache()
	cached := NewCachedAlbumStore(store, cache, time.Minute)
	ctx := context.Background()

	_, err := cached.FindByID(ctx, album.ID)
	require.NoError(t, err)
	require.True(t, cache.has(albumKey(album.ID)))

	album.Title = "Dookie (Remastered)"
	require.NoError(t, cached.Save(ctx, &album))
	assert.False(t, cache.has(albumKey(album.ID)))

	found, err := cached.FindByID(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dookie (Remastered)", found.Title)

	require.NoError(t, cached.DeleteByID(ctx, album.ID))
	assert.False(t, cache.has(albumKey(album.ID)))

	found, err = cached.FindByID(ctx, album.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCachedAlbumStore_DeleteAll_FlushesAlbumKeys(t *testing.T) {
	a := entities.Album{ID: uuid.New(), Title: "Nevermind", Artist: "Nirvana"}
	b := entities.Album{ID: uuid.New(), Title: "Ten", Artist: "Pearl Jam"}
	store := newCountingStore(a, b)
	cache := newMemoryCache()
	require.NoError(t, cache.Set(context.Background(), "session:1", "unrelated", 0))
	cached := NewCachedAlbumStore(store, cache, time.Minute)
	ctx := context.Background()

	_, err := cached.FindAllByID(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)

	require.NoError(t, cached.DeleteAll(ctx))

	assert.False(t, cache.has(albumKey(a.ID)))
	assert.False(t, cache.has(albumKey(b.ID)))
	assert.True(t, cache.has("session:1"))
}

// pausingStore hands out a snapshot and then waits before returning it, so a
// write can land between the store read and the cache fill.
type pausingStore struct {
	*countingStore
	read    chan struct{}
	release chan struct{}
}

func newPausingStore(albums ...entities.Album) *pausingStore {
	return &pausingStore{
		countingStore: newCountingStore(albums...),
		read:          make(chan struct{}),
		release:       make(chan struct{}),
	}
}

func (s *pausingStore) FindByID(ctx context.Context, id uuid.UUID) (*entities.Album, error) {
	album, err := s.countingStore.FindByID(ctx, id)
	close(s.read)
	<-s.release
	return album, err
}

func (s *pausingStore) FindAllByID(ctx context.Context, ids []uuid.UUID) ([]entities.Album, error) {
	albums, err := s.countingStore.FindAllByID(ctx, ids)
	close(s.read)
	<-s.release
	return albums, err
}

func TestCachedAlbumStore_FindByID_DoesNotRecacheDeletedAlbum(t *testing.T) {
	album := entities.Album{ID: uuid.New(), Title: "Dookie", Artist: "Green Day"}
	store := newPausingStore(album)
	cache := newMemoryCache()
	cached := NewCachedAlbumStore(store, cache, time.Minute)
	ctx := context.Background()

	done := make(chan *entities.Album)
	go func() {
		found, _ := cached.FindByID(ctx, album.ID)
		done <- found
	}()

	<-store.read
	require.NoError(t, cached.DeleteByID(ctx, album.ID))
	close(store.release)

	// The slow reader still sees its snapshot, but must not cache it.
	assert.NotNil(t, <-done)
	assert.False(t, cache.has(albumKey(album.ID)))

	found, err := store.countingStore.FindByID(ctx, album.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCachedAlbumStore_FindAllByID_DoesNotRecacheOverwrittenAlbum(t *testing.T) {
	album := entities.Album{ID: uuid.New(), Title: "Dookie", Artist: "Green Day"}
	store := newPausingStore(album)
	cache := newMemoryCache()
	cached := NewCachedAlbumStore(store, cache, time.Minute)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		_, _ = cached.FindAllByID(ctx, []uuid.UUID{album.ID})
		close(done)
	}()

	<-store.read
	updated := album
	updated.Title = "Dookie (Remastered)"
	require.NoError(t, cached.Save(ctx, &updated))
	close(store.release)
	<-done

	assert.False(t, cache.has(albumKey(album.ID)))

	// The next read goes to the store and caches the current value.
	store.read = make(chan struct{})
	store.release = make(chan struct{})
	close(store.release)
	albums, err := cached.FindAllByID(ctx, []uuid.UUID{album.ID})
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Dookie (Remastered)", albums[0].Title)
	assert.True(t, cache.has(albumKey(album.ID)))
}
