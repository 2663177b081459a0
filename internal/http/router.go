package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeaders())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Health endpoints
	health := NewHealthController(cfg.Version, cfg.HealthChecks...)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Catalog endpoints
	if cfg.Catalog != nil {
		albums := NewAlbumsController(cfg.Catalog)
		router.POST("/albums", albums.AddAlbums)
		router.POST("/albums/search", albums.SearchAlbums)
		router.GET("/albums", albums.GetAllAlbums)
		router.GET("/albums/all", albums.GetAllAlbums)
		router.GET("/albums/:id", albums.GetAlbum)
		router.PUT("/albums/:id", albums.SaveAlbum)
		router.DELETE("/albums", albums.RemoveAlbums)
		router.DELETE("/albums/all", albums.RemoveAllAlbums)
		router.DELETE("/albums/:id", albums.RemoveAlbum)
	}

	// User endpoints
	if cfg.Users != nil {
		users := NewUsersController(cfg.Users)
		router.GET("/users", users.GetAllUsers)
		router.POST("/users", users.CreateUser)
		router.DELETE("/users", users.DeleteAllUsers)
		router.GET("/users/:id", users.GetUser)
		router.PUT("/users/:id", users.SaveUser)
		router.DELETE("/users/:id", users.DeleteUser)
	}

	// Library endpoints
	if cfg.Library != nil {
		library := NewLibraryController(cfg.Library)
		router.GET("/users/:id/albums", library.GetAlbums)
		router.PUT("/users/:id/albums", library.AddAlbums)
		router.DELETE("/users/:id/albums", library.RemoveAlbums)
		router.DELETE("/users/:id/albums/all", library.ClearAlbums)
		router.PUT("/users/:id/albums/:albumId", library.AddAlbum)
		router.DELETE("/users/:id/albums/:albumId", library.RemoveAlbum)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.DatasetPath)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
