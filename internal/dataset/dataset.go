// Package dataset loads album datasets from JSON files into the catalog.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// CatalogWriter is the part of the catalog service an import needs.
type CatalogWriter interface {
	DeleteAll(ctx context.Context) error
	SaveAlbums(ctx context.Context, albums []entities.Album) ([]entities.Album, error)
}

// ImportRecorder observes finished imports.
type ImportRecorder interface {
	CatalogImport(albums int, err error)
}

// Load reads a JSON array of albums. Albums without an id get one when they
// are saved.
func Load(path string) ([]entities.Album, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var albums []entities.Album
	if err := json.Unmarshal(data, &albums); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if albums == nil {
		albums = []entities.Album{}
	}
	return albums, nil
}

// LoadOrEmpty is Load that logs failures and falls back to an empty dataset.
func LoadOrEmpty(path string) []entities.Album {
	albums, err := Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Error while loading albums dataset")
		return []entities.Album{}
	}
	return albums
}

// Result describes a finished import.
type Result struct {
	Albums int  `json:"albums"`
	Reset  bool `json:"reset"`
}

type Importer struct {
	catalog  CatalogWriter
	recorder ImportRecorder
}

func NewImporter(catalog CatalogWriter, recorder ImportRecorder) *Importer {
	return &Importer{catalog: catalog, recorder: recorder}
}

// Import writes albums to the catalog, emptying it first when reset is set.
// The batch is validated as a whole; nothing is written if any album is
// invalid, but a reset that already happened is not undone.
func (i *Importer) Import(ctx context.Context, albums []entities.Album, reset bool) (Result, error) {
	result, err := i.importAlbums(ctx, albums, reset)
	if i.recorder != nil {
		i.recorder.CatalogImport(result.Albums, err)
	}
	return result, err
}

func (i *Importer) importAlbums(ctx context.Context, albums []entities.Album, reset bool) (Result, error) {
	result := Result{Reset: reset}

	if reset {
		if err := i.catalog.DeleteAll(ctx); err != nil {
			return result, fmt.Errorf("reset catalog: %w", err)
		}
	}
	if len(albums) == 0 {
		return result, nil
	}

	saved, err := i.catalog.SaveAlbums(ctx, albums)
	if err != nil {
		return result, fmt.Errorf("import albums: %w", err)
	}
	result.Albums = len(saved)

	log.Info().Int("albums", result.Albums).Bool("reset", reset).Msg("Catalog import finished")
	return result, nil
}

// Bootstrap replaces the catalog with the dataset at path. An unreadable
// dataset is logged and treated as empty.
func (i *Importer) Bootstrap(ctx context.Context, path string) (Result, error) {
	return i.Import(ctx, LoadOrEmpty(path), true)
}
