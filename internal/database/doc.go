// Package database provides the data access layer for the application.
//
// # Architecture
//
// Two SQLite databases back the service:
//
//	database/
//	├── database.go      # Connection setup and migrations for both stores
//	├── users/           # Ownership store: users and their album-id sets
//	└── albums/          # Catalog store: album documents and free-text search
//
// The ownership store is relational (users, user_albums). The catalog store
// holds album documents addressed by UUID and is searched across several
// text fields at once.
//
// # Using Sub-packages
//
//	usersDB, err := database.NewDatabase("./music-library.db")
//	catalogDB, err := database.NewCatalogDatabase("./catalog.db")
//
//	userRepo := users.NewRepository(usersDB.DB)
//	albumRepo := albums.NewRepository(catalogDB.DB)
//
// # Interface Implementations
//
//   - users.Repository: implements services.UserStore
//   - albums.Repository: implements services.AlbumStore
//
// Compile-time checks live in internal/interfaces/checks.go.
package database
