package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// Library defines the per-user album set operations exposed over HTTP.
type Library interface {
	AddAlbum(ctx context.Context, userID uint, albumID uuid.UUID) error
	AddAlbums(ctx context.Context, userID uint, albumIDs []uuid.UUID) error
	RemoveAlbum(ctx context.Context, userID uint, albumID uuid.UUID) error
	RemoveAlbums(ctx context.Context, userID uint, albumIDs []uuid.UUID) error
	ClearAlbums(ctx context.Context, userID uint) error
	GetAlbums(ctx context.Context, userID uint) ([]entities.Album, error)
}

// LibraryController serves /users/:id/albums. Mutations respond with the
// user's albums after the change.
type LibraryController struct {
	library Library
}

func NewLibraryController(library Library) *LibraryController {
	return &LibraryController{library: library}
}

// GetAlbums handles GET /users/:id/albums
func (lc *LibraryController) GetAlbums(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lc.respondAlbums(c, userID)
}

// AddAlbums handles PUT /users/:id/albums with a JSON array of album ids.
func (lc *LibraryController) AddAlbums(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ids, ok := bindUUIDList(c)
	if !ok {
		return
	}

	if err := lc.library.AddAlbums(c.Request.Context(), userID, ids); err != nil {
		respondServiceError(c, err, "add albums")
		return
	}
	lc.respondAlbums(c, userID)
}

// RemoveAlbums handles DELETE /users/:id/albums with a JSON array of album ids.
func (lc *LibraryController) RemoveAlbums(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ids, ok := bindUUIDList(c)
	if !ok {
		return
	}

	if err := lc.library.RemoveAlbums(c.Request.Context(), userID, ids); err != nil {
		respondServiceError(c, err, "remove albums")
		return
	}
	lc.respondAlbums(c, userID)
}

// ClearAlbums handles DELETE /users/:id/albums/all
func (lc *LibraryController) ClearAlbums(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := lc.library.ClearAlbums(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "clear albums")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddAlbum handles PUT /users/:id/albums/:albumId
func (lc *LibraryController) AddAlbum(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	albumID, ok := parseUUIDParam(c, "albumId")
	if !ok {
		return
	}

	if err := lc.library.AddAlbum(c.Request.Context(), userID, albumID); err != nil {
		respondServiceError(c, err, "add album")
		return
	}
	lc.respondAlbums(c, userID)
}

// RemoveAlbum handles DELETE /users/:id/albums/:albumId
func (lc *LibraryController) RemoveAlbum(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	albumID, ok := parseUUIDParam(c, "albumId")
	if !ok {
		return
	}

	if err := lc.library.RemoveAlbum(c.Request.Context(), userID, albumID); err != nil {
		respondServiceError(c, err, "remove album")
		return
	}
	lc.respondAlbums(c, userID)
}

func (lc *LibraryController) respondAlbums(c *gin.Context, userID uint) {
	albums, err := lc.library.GetAlbums(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "get albums")
		return
	}
	c.JSON(http.StatusOK, albums)
}
