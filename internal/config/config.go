package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Logging
		Cache
		Albums
		Tasks
		Metrics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path        string // Users and their libraries
		CatalogPath string // Album catalog
	}
	Logging struct {
		Level  string // trace, debug, info, warn, error
		Format string // json or console
	}
	Cache struct {
		RedisAddr     string // Empty disables the catalog cache
		RedisPassword string
		RedisDB       int
		TTL           time.Duration
	}
	Albums struct {
		Load           bool   // Reset and load the catalog from Dataset on startup
		Dataset        string // Path to a JSON array of albums
		ReloadSchedule string // Cron format; empty disables periodic reloads
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Metrics struct {
		Enabled bool
	}
)

// CacheEnabled reports whether a Redis address was configured.
func (c Cache) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("catalog_path", DefaultCatalogPath)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Catalog cache defaults
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("catalog_cache_ttl", "10m")

	// Dataset bootstrap defaults
	v.SetDefault("albums_load", false)
	v.SetDefault("albums_dataset", DefaultDatasetPath)
	v.SetDefault("albums_reload_schedule", "") // e.g. "0 3 * * *" = daily at 03:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:        v.GetString("DATABASE_PATH"),
			CatalogPath: v.GetString("CATALOG_PATH"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Cache: Cache{
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			TTL:           v.GetDuration("CATALOG_CACHE_TTL"),
		},
		Albums: Albums{
			Load:           v.GetBool("ALBUMS_LOAD"),
			Dataset:        v.GetString("ALBUMS_DATASET"),
			ReloadSchedule: v.GetString("ALBUMS_RELOAD_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
}
