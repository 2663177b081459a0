package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/musiclibrary/internal/config"
	"github.com/mrlokans/musiclibrary/internal/database"
	"github.com/mrlokans/musiclibrary/internal/database/albums"
	"github.com/mrlokans/musiclibrary/internal/dataset"
	"github.com/mrlokans/musiclibrary/internal/services"
)

// ImportAlbumsCommand loads a JSON album dataset into the catalog database.
type ImportAlbumsCommand struct {
	DatasetPath string
	CatalogPath string
	Reset       bool
	DryRun      bool
	Verbose     bool

	out io.Writer
}

func NewImportAlbumsCommand() *ImportAlbumsCommand {
	return &ImportAlbumsCommand{out: os.Stdout}
}

func (cmd *ImportAlbumsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-albums", flag.ContinueOnError)

	fs.StringVar(&cmd.DatasetPath, "file", "", "Path to a JSON array of albums (required)")
	fs.StringVar(&cmd.CatalogPath, "catalog", config.DefaultCatalogPath, "Path to the catalog database")
	fs.BoolVar(&cmd.Reset, "reset", false, "Delete every album in the catalog before importing")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate the dataset without writing to the catalog")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List every album")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-albums -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import albums from a JSON dataset into the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Each entry needs a title and an artist; releaseYear, coverURL and id\n")
		fmt.Fprintf(os.Stderr, "are optional. Albums without an id get a new one.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Replace the catalog with the bundled sample:\n")
		fmt.Fprintf(os.Stderr, "  %s import-albums -file %s -reset\n\n", os.Args[0], config.DefaultDatasetPath)
		fmt.Fprintf(os.Stderr, "  # Check a dataset without importing it:\n")
		fmt.Fprintf(os.Stderr, "  %s import-albums -file albums.json -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.DatasetPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportAlbumsCommand) Run(ctx context.Context) error {
	fmt.Fprintln(cmd.out, "Album Import")
	fmt.Fprintln(cmd.out, "============")

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "DRY RUN MODE - No changes will be made")
		fmt.Fprintln(cmd.out)
	}

	fmt.Fprintf(cmd.out, "File: %s\n", cmd.DatasetPath)

	batch, err := dataset.Load(cmd.DatasetPath)
	if err != nil {
		return err
	}

	if len(batch) == 0 && !cmd.Reset {
		fmt.Fprintln(cmd.out, "No albums found in dataset")
		return nil
	}

	fmt.Fprintf(cmd.out, "Found %d albums\n", len(batch))

	var invalid int
	for i, album := range batch {
		verr := album.Validate()
		if cmd.Verbose {
			status := "OK"
			if verr != nil {
				status = "INVALID: " + verr.Error()
			}
			fmt.Fprintf(cmd.out, "%d. \"%s\" by %s [%s]\n", i+1, album.Title, album.Artist, status)
		}
		if verr != nil {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d albums are invalid, nothing imported", invalid, len(batch))
	}

	if cmd.DryRun {
		fmt.Fprintln(cmd.out, "\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absCatalogPath, err := filepath.Abs(cmd.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for catalog: %w", err)
	}
	cmd.CatalogPath = absCatalogPath

	fmt.Fprintf(cmd.out, "\nSaving to catalog: %s\n", cmd.CatalogPath)

	db, err := database.NewCatalogDatabase(cmd.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	defer db.Close()

	catalog := services.NewCatalogService(albums.NewRepository(db.DB))
	result, err := dataset.NewImporter(catalog, nil).Import(ctx, batch, cmd.Reset)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.out, "\n=== Import Summary ===")
	fmt.Fprintf(cmd.out, "Albums saved: %d\n", result.Albums)
	if result.Reset {
		fmt.Fprintln(cmd.out, "Catalog was reset before import")
	}
	return nil
}
