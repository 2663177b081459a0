package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// SearchFields are the album fields free-text search looks at.
var SearchFields = []string{
	entities.AlbumFieldTitle,
	entities.AlbumFieldArtist,
	entities.AlbumFieldReleaseYear,
	entities.AlbumFieldCoverURL,
}

// CatalogService manages the album catalog.
type CatalogService struct {
	albums AlbumStore
}

func NewCatalogService(albums AlbumStore) *CatalogService {
	return &CatalogService{albums: albums}
}

// SaveAlbum validates and upserts an album, assigning a fresh ID when it has
// none.
func (s *CatalogService) SaveAlbum(ctx context.Context, album *entities.Album) (*entities.Album, error) {
	if err := album.Validate(); err != nil {
		return nil, err
	}
	if !album.HasID() {
		album.ID = uuid.New()
	}
	if err := s.albums.Save(ctx, album); err != nil {
		return nil, fmt.Errorf("save album %s: %w", album.ID, err)
	}
	return album, nil
}

// SaveAlbums validates the whole batch before writing any of it. Field
// errors are keyed by position, e.g. "[1].title".
func (s *CatalogService) SaveAlbums(ctx context.Context, albums []entities.Album) ([]entities.Album, error) {
	invalid := map[string]string{}
	for i := range albums {
		err := albums[i].Validate()
		if err == nil {
			continue
		}
		var verr *entities.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		for field, msg := range verr.Fields {
			invalid[fmt.Sprintf("[%d].%s", i, field)] = msg
		}
	}
	if len(invalid) > 0 {
		return nil, &entities.ValidationError{Fields: invalid}
	}

	for i := range albums {
		if !albums[i].HasID() {
			albums[i].ID = uuid.New()
		}
	}
	if err := s.albums.SaveAll(ctx, albums); err != nil {
		return nil, fmt.Errorf("save %d albums: %w", len(albums), err)
	}
	return albums, nil
}

// DeleteAlbum removes an album. Missing albums are ignored.
func (s *CatalogService) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	if err := s.albums.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete album %s: %w", id, err)
	}
	return nil
}

func (s *CatalogService) DeleteAlbums(ctx context.Context, ids []uuid.UUID) error {
	if err := s.albums.DeleteAllByID(ctx, ids); err != nil {
		return fmt.Errorf("delete %d albums: %w", len(ids), err)
	}
	return nil
}

func (s *CatalogService) DeleteAll(ctx context.Context) error {
	if err := s.albums.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	return nil
}

// GetAlbum looks an album up. A missing album is reported through found,
// not as an error.
func (s *CatalogService) GetAlbum(ctx context.Context, id uuid.UUID) (album *entities.Album, found bool, err error) {
	album, err = s.albums.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("get album %s: %w", id, err)
	}
	return album, album != nil, nil
}

func (s *CatalogService) GetAll(ctx context.Context) ([]entities.Album, error) {
	albums, err := s.albums.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	if albums == nil {
		albums = []entities.Album{}
	}
	return albums, nil
}

// FreeTextSearch matches the text against title, artist, release year and
// cover URL. Blank text matches nothing.
func (s *CatalogService) FreeTextSearch(ctx context.Context, text string) ([]entities.Album, error) {
	if strings.TrimSpace(text) == "" {
		return []entities.Album{}, nil
	}

	query := entities.MultiFieldQuery{Text: text, Fields: SearchFields}
	log.Debug().Str("query", text).Strs("fields", query.Fields).Msg("Catalog search")

	albums, err := s.albums.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	if albums == nil {
		albums = []entities.Album{}
	}
	return albums, nil
}
