package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// Catalog defines the catalog operations exposed over HTTP.
type Catalog interface {
	SaveAlbum(ctx context.Context, album *entities.Album) (*entities.Album, error)
	SaveAlbums(ctx context.Context, albums []entities.Album) ([]entities.Album, error)
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
	DeleteAlbums(ctx context.Context, ids []uuid.UUID) error
	DeleteAll(ctx context.Context) error
	GetAlbum(ctx context.Context, id uuid.UUID) (*entities.Album, bool, error)
	GetAll(ctx context.Context) ([]entities.Album, error)
	FreeTextSearch(ctx context.Context, text string) ([]entities.Album, error)
}

type AlbumsController struct {
	catalog Catalog
}

func NewAlbumsController(catalog Catalog) *AlbumsController {
	return &AlbumsController{catalog: catalog}
}

// AddAlbums stores a batch of albums.
// POST /albums
func (ac *AlbumsController) AddAlbums(c *gin.Context) {
	var albums []entities.Album
	if err := c.ShouldBindJSON(&albums); err != nil {
		respondBadRequest(c, "request body must be a JSON array of albums")
		return
	}

	saved, err := ac.catalog.SaveAlbums(c.Request.Context(), albums)
	if err != nil {
		respondServiceError(c, err, "save albums")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// SaveAlbum creates or replaces the album at the given id. The path id wins
// over any id in the body.
// PUT /albums/:id
func (ac *AlbumsController) SaveAlbum(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var album entities.Album
	if err := c.ShouldBindJSON(&album); err != nil {
		respondBadRequest(c, "invalid album: "+err.Error())
		return
	}
	album.ID = id

	saved, err := ac.catalog.SaveAlbum(c.Request.Context(), &album)
	if err != nil {
		respondServiceError(c, err, "save album")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// RemoveAlbums deletes the albums listed in the body.
// DELETE /albums
func (ac *AlbumsController) RemoveAlbums(c *gin.Context) {
	ids, ok := bindUUIDList(c)
	if !ok {
		return
	}
	if err := ac.catalog.DeleteAlbums(c.Request.Context(), ids); err != nil {
		respondServiceError(c, err, "delete albums")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveAllAlbums empties the catalog.
// DELETE /albums/all
func (ac *AlbumsController) RemoveAllAlbums(c *gin.Context) {
	if err := ac.catalog.DeleteAll(c.Request.Context()); err != nil {
		respondServiceError(c, err, "delete all albums")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveAlbum deletes one album. Unknown ids are not an error.
// DELETE /albums/:id
func (ac *AlbumsController) RemoveAlbum(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.catalog.DeleteAlbum(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete album")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAlbum returns one album.
// GET /albums/:id
func (ac *AlbumsController) GetAlbum(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	album, found, err := ac.catalog.GetAlbum(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get album")
		return
	}
	if !found {
		respondNotFound(c, "album")
		return
	}
	c.JSON(http.StatusOK, album)
}

// GetAllAlbums returns the whole catalog.
// GET /albums, GET /albums/all
func (ac *AlbumsController) GetAllAlbums(c *gin.Context) {
	albums, err := ac.catalog.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list albums")
		return
	}
	c.JSON(http.StatusOK, albums)
}

// SearchAlbums runs a free-text search. The body is the query text.
// POST /albums/search
func (ac *AlbumsController) SearchAlbums(c *gin.Context) {
	text, err := readSearchText(c)
	if err != nil {
		respondBadRequest(c, "could not read search query")
		return
	}

	albums, err := ac.catalog.FreeTextSearch(c.Request.Context(), text)
	if err != nil {
		respondServiceError(c, err, "search albums")
		return
	}
	c.JSON(http.StatusOK, albums)
}
