package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core services
	Catalog Catalog
	Users   Users
	Library Library

	// Health probes reported by /health
	HealthChecks []HealthCheck

	// Prometheus middleware and handler (optional)
	Metrics MetricsProvider

	// Task queue (optional)
	TaskQueue   TaskQueue
	DatasetPath string

	// Application info
	Version string
}

// MetricsProvider exposes request instrumentation and the scrape endpoint.
type MetricsProvider interface {
	GinMiddleware() gin.HandlerFunc
	Handler() http.Handler
}
