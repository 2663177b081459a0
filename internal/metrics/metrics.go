// Package metrics exposes Prometheus collectors for HTTP traffic, library
// mutations and catalog imports.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "music_library"

type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight     prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	libraryMutations *prometheus.CounterVec
	libraryAlbums    *prometheus.CounterVec
	catalogImports   *prometheus.CounterVec
	catalogImported  prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
		libraryMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "library",
			Name:      "mutations_total",
			Help:      "Library mutations applied, by operation.",
		}, []string{"operation"}),
		libraryAlbums: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "library",
			Name:      "albums_total",
			Help:      "Album ids passed to library mutations, by operation.",
		}, []string{"operation"}),
		catalogImports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "imports_total",
			Help:      "Catalog dataset imports, by result.",
		}, []string{"result"}),
		catalogImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "imported_albums_total",
			Help:      "Albums written by catalog dataset imports.",
		}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.libraryMutations,
		m.libraryAlbums,
		m.catalogImports,
		m.catalogImported,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and durations, labelled by route
// template so path parameters do not explode cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// LibraryMutation counts one applied library mutation.
func (m *Metrics) LibraryMutation(operation string, albums int) {
	m.libraryMutations.WithLabelValues(operation).Inc()
	if albums > 0 {
		m.libraryAlbums.WithLabelValues(operation).Add(float64(albums))
	}
}

// CatalogImport counts a finished dataset import.
func (m *Metrics) CatalogImport(albums int, err error) {
	if err != nil {
		m.catalogImports.WithLabelValues("error").Inc()
		return
	}
	m.catalogImports.WithLabelValues("success").Inc()
	m.catalogImported.Add(float64(albums))
}
