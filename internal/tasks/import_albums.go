package tasks

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/musiclibrary/internal/dataset"
	"github.com/mrlokans/musiclibrary/internal/entities"
)

const ImportAlbumsQueue = "import_albums"

// AlbumImporter writes a loaded dataset into the catalog.
type AlbumImporter interface {
	Import(ctx context.Context, albums []entities.Album, reset bool) (dataset.Result, error)
}

// ImportAlbumsTask loads a JSON dataset into the catalog.
type ImportAlbumsTask struct {
	Path  string `json:"path"`
	Reset bool   `json:"reset"`
	// Tolerant treats an unreadable dataset as empty instead of failing.
	Tolerant bool `json:"tolerant"`
}

// importAlbumsSettings is set by NewImportAlbumsQueue. backlite reads queue
// settings from the task type, so they cannot travel on the task itself.
var importAlbumsSettings atomic.Pointer[Config]

// Config returns the queue configuration for dataset imports.
func (t ImportAlbumsTask) Config() backlite.QueueConfig {
	cfg := DefaultConfig()
	if configured := importAlbumsSettings.Load(); configured != nil {
		cfg = *configured
	}
	return backlite.QueueConfig{
		Name:        ImportAlbumsQueue,
		MaxAttempts: cfg.MaxRetries,
		Backoff:     cfg.RetryDelay,
		Timeout:     cfg.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   cfg.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportAlbumsProcessor creates a processor function for ImportAlbumsTask.
func ImportAlbumsProcessor(importer AlbumImporter) backlite.QueueProcessor[ImportAlbumsTask] {
	return func(ctx context.Context, task ImportAlbumsTask) error {
		if importer == nil {
			return fmt.Errorf("album importer not configured")
		}
		if task.Path == "" {
			return fmt.Errorf("dataset path is required")
		}

		var albums []entities.Album
		if task.Tolerant {
			albums = dataset.LoadOrEmpty(task.Path)
		} else {
			loaded, err := dataset.Load(task.Path)
			if err != nil {
				return err
			}
			albums = loaded
		}

		result, err := importer.Import(ctx, albums, task.Reset)
		if err != nil {
			return err
		}

		log.Info().
			Str("path", task.Path).
			Int("albums", result.Albums).
			Bool("reset", result.Reset).
			Msg("Album dataset imported")
		return nil
	}
}

// NewImportAlbumsQueue creates a backlite queue for dataset imports that
// retries, backs off and times out as cfg says. Zero values keep the
// defaults.
func NewImportAlbumsQueue(importer AlbumImporter, cfg Config) backlite.Queue {
	settings := withDefaults(cfg)
	importAlbumsSettings.Store(&settings)
	return backlite.NewQueue(ImportAlbumsProcessor(importer))
}
