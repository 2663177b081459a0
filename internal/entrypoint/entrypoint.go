package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/musiclibrary/internal/cache"
	"github.com/mrlokans/musiclibrary/internal/config"
	"github.com/mrlokans/musiclibrary/internal/database"
	"github.com/mrlokans/musiclibrary/internal/database/albums"
	"github.com/mrlokans/musiclibrary/internal/database/users"
	"github.com/mrlokans/musiclibrary/internal/dataset"
	http_controllers "github.com/mrlokans/musiclibrary/internal/http"
	"github.com/mrlokans/musiclibrary/internal/logger"
	"github.com/mrlokans/musiclibrary/internal/metrics"
	"github.com/mrlokans/musiclibrary/internal/scheduler"
	"github.com/mrlokans/musiclibrary/internal/services"
	"github.com/mrlokans/musiclibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server exiting")
}

func Run(cfg *config.Config, version string) {
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log.Info().Str("version", version).Msg("Starting music library")

	userDB, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize users database")
	}
	defer func() {
		if err := userDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing users database")
		}
	}()

	catalogDB, err := database.NewCatalogDatabase(cfg.Database.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize catalog database")
	}
	defer func() {
		if err := catalogDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing catalog database")
		}
	}()

	healthChecks := []http_controllers.HealthCheck{
		{Name: "users_db", Check: func(context.Context) error { return userDB.Ping() }},
		{Name: "catalog_db", Check: func(context.Context) error { return catalogDB.Ping() }},
	}

	userStore := users.NewRepository(userDB.DB)
	var albumStore services.AlbumStore = albums.NewRepository(catalogDB.DB)

	if cfg.Cache.CacheEnabled() {
		redisCache := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unreachable, catalog cache will fall through")
		} else {
			log.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.TTL).Msg("Catalog cache enabled")
		}
		cancel()

		albumStore = cache.NewCachedAlbumStore(albumStore, redisCache, cfg.Cache.TTL)
		healthChecks = append(healthChecks, http_controllers.HealthCheck{Name: "cache", Check: redisCache.Ping})
	}

	libraryService := services.NewLibraryService(userStore, albumStore)
	userService := services.NewUserService(userStore)
	catalogService := services.NewCatalogService(albumStore)

	var m *metrics.Metrics
	var importRecorder dataset.ImportRecorder
	if cfg.Metrics.Enabled {
		m = metrics.New()
		libraryService.SetRecorder(m)
		importRecorder = m
	}
	importer := dataset.NewImporter(catalogService, importRecorder)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing task client")
			}
		}()

		taskClient.Register(tasks.NewImportAlbumsQueue(importer, taskCfg))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	loader := &CatalogLoader{Importer: importer, DatasetPath: cfg.Albums.Dataset}
	if taskClient != nil {
		loader.Queue = taskClient
	}

	if cfg.Albums.Load {
		if err := loader.ReloadCatalog(context.Background()); err != nil {
			log.Error().Err(err).Msg("Catalog bootstrap failed")
		}
	}

	reloadScheduler := scheduler.NewCatalogReloadScheduler(loader, cfg.Albums.ReloadSchedule)
	if err := reloadScheduler.Start(context.Background()); err != nil {
		log.Error().Err(err).Str("schedule", cfg.Albums.ReloadSchedule).Msg("Failed to start catalog reload scheduler")
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:      catalogService,
		Users:        userService,
		Library:      libraryService,
		HealthChecks: healthChecks,
		DatasetPath:  cfg.Albums.Dataset,
		Version:      version,
	}
	if m != nil {
		routerCfg.Metrics = m
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		reloadScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
