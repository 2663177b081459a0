package config

// Default paths for databases and the bundled dataset
const (
	// DefaultDatabasePath is the default path for the users/library database
	DefaultDatabasePath = "./music-library.db"

	// DefaultCatalogPath is the default path for the album catalog database
	DefaultCatalogPath = "./catalog.db"

	// DefaultDatasetPath is the album dataset loaded on bootstrap
	DefaultDatasetPath = "./data/albums_sample.json"
)
