package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/musiclibrary/internal/cache"
	"github.com/mrlokans/musiclibrary/internal/database/albums"
	"github.com/mrlokans/musiclibrary/internal/database/users"
	"github.com/mrlokans/musiclibrary/internal/dataset"
	"github.com/mrlokans/musiclibrary/internal/entrypoint"
	"github.com/mrlokans/musiclibrary/internal/http"
	"github.com/mrlokans/musiclibrary/internal/metrics"
	"github.com/mrlokans/musiclibrary/internal/scheduler"
	"github.com/mrlokans/musiclibrary/internal/services"
	"github.com/mrlokans/musiclibrary/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// UserStore implementations
var _ services.UserStore = (*users.Repository)(nil)

// AlbumStore implementations
var _ services.AlbumStore = (*albums.Repository)(nil)
var _ services.AlbumStore = (*cache.CachedAlbumStore)(nil)
var _ cache.AlbumStore = (*albums.Repository)(nil)

// Cache implementations
var _ cache.Cache = (*cache.RedisCache)(nil)

// =============================================================================
// HTTP Surface
// =============================================================================

var _ http.Catalog = (*services.CatalogService)(nil)
var _ http.Users = (*services.UserService)(nil)
var _ http.Library = (*services.LibraryService)(nil)
var _ http.MetricsProvider = (*metrics.Metrics)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// =============================================================================
// Observability
// =============================================================================

var _ services.LibraryRecorder = (*metrics.Metrics)(nil)
var _ dataset.ImportRecorder = (*metrics.Metrics)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ dataset.CatalogWriter = (*services.CatalogService)(nil)
var _ tasks.AlbumImporter = (*dataset.Importer)(nil)
var _ entrypoint.Enqueuer = (*tasks.Client)(nil)
var _ scheduler.CatalogReloader = (*entrypoint.CatalogLoader)(nil)
