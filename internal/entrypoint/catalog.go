package entrypoint

import (
	"context"
	"errors"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/musiclibrary/internal/dataset"
	"github.com/mrlokans/musiclibrary/internal/tasks"
)

// Enqueuer hands a task to the background queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// CatalogLoader replaces the catalog with the dataset file. With a Queue the
// work is handed to the import_albums queue; otherwise it runs inline.
type CatalogLoader struct {
	Importer    *dataset.Importer
	Queue       Enqueuer
	DatasetPath string
}

func (l *CatalogLoader) ReloadCatalog(ctx context.Context) error {
	if l.DatasetPath == "" {
		return errors.New("no album dataset configured")
	}

	if l.Queue != nil {
		id, err := l.Queue.Enqueue(ctx, tasks.ImportAlbumsTask{
			Path:     l.DatasetPath,
			Reset:    true,
			Tolerant: true,
		})
		if err != nil {
			return err
		}
		log.Info().Str("task_id", id).Str("path", l.DatasetPath).Msg("Catalog reload enqueued")
		return nil
	}

	_, err := l.Importer.Bootstrap(ctx, l.DatasetPath)
	return err
}
