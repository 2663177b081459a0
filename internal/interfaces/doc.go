// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore: Users and their owned album sets (internal/services/interfaces.go)
//   - AlbumStore: The album catalog, including search (internal/services/interfaces.go)
//   - Cache: Key/value cache in front of the catalog (internal/cache/cache.go)
//
// ## HTTP Interfaces
//
// Each controller declares the service operations it calls:
//
//   - Catalog: internal/http/albums.go
//   - Users: internal/http/users.go
//   - Library: internal/http/library.go
//   - TaskQueue: internal/http/tasks.go
//
// ## Import Interfaces
//
//   - CatalogWriter: Destination of a dataset import (internal/dataset/dataset.go)
//   - AlbumImporter: Used by the import_albums queue (internal/tasks/import_albums.go)
//   - CatalogReloader: Called by the cron scheduler (internal/scheduler/catalog_reload.go)
//
// ## Observability Interfaces
//
//   - LibraryRecorder: Library mutation counts (internal/services/interfaces.go)
//   - ImportRecorder: Catalog import counts (internal/dataset/dataset.go)
//
// # Adding a New Catalog Backend
//
//  1. Create sub-package: internal/database/<backend>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement every AlbumStore method. Search receives a MultiFieldQuery
//     and returns matches ordered by relevance.
//
//  4. Add compile-time check:
//
//     var _ services.AlbumStore = (*Repository)(nil)
//
//  5. Select it in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
