package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// Writers take the SQLite lock when the transaction begins, so concurrent
// library mutations queue on the busy timeout instead of failing to upgrade.
const sqliteParams = "?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"

type Database struct {
	DB   *gorm.DB
	Path string
}

// NewDatabase opens the relational store holding users and their libraries.
func NewDatabase(dbPath string) (*Database, error) {
	return open(dbPath, &entities.User{}, &entities.UserAlbum{})
}

// NewCatalogDatabase opens the album catalog store.
func NewCatalogDatabase(dbPath string) (*Database, error) {
	return open(dbPath, &entities.Album{})
}

func open(dbPath string, models ...any) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+sqliteParams), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("Database initialized")

	return &Database{DB: db, Path: dbPath}, nil
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
