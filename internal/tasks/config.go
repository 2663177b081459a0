package tasks

import "time"

// Config holds configuration for the task queue.
type Config struct {
	Workers           int           // concurrent workers, default 2
	MaxRetries        int           // default attempts for failing tasks, default 3
	RetryDelay        time.Duration // backoff between attempts, default 1m
	TaskTimeout       time.Duration // per-task execution limit, default 5m
	ReleaseAfter      time.Duration // stuck tasks go back to the queue after this, default 15m
	CleanupInterval   time.Duration // how often finished tasks are purged, default 1h
	RetentionDuration time.Duration // how long finished tasks are kept, default 24h
}

// DefaultConfig returns a Config with the defaults listed above.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}

// withDefaults fills zero fields of cfg from DefaultConfig.
func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = def.TaskTimeout
	}
	if cfg.ReleaseAfter <= 0 {
		cfg.ReleaseAfter = def.ReleaseAfter
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if cfg.RetentionDuration <= 0 {
		cfg.RetentionDuration = def.RetentionDuration
	}
	return cfg
}
