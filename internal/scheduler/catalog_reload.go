package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// CatalogReloader replaces the catalog with the configured dataset.
type CatalogReloader interface {
	ReloadCatalog(ctx context.Context) error
}

// CatalogReloadScheduler reloads the album catalog on a cron schedule.
type CatalogReloadScheduler struct {
	reloader CatalogReloader
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	cancel    context.CancelFunc
}

// NewCatalogReloadScheduler creates a scheduler. An empty schedule leaves it
// disabled.
func NewCatalogReloadScheduler(reloader CatalogReloader, schedule string) *CatalogReloadScheduler {
	return &CatalogReloadScheduler{
		reloader: reloader,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the reload job and starts cron. The scheduler stops when
// ctx is cancelled.
func (s *CatalogReloadScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Info().Msg("Catalog reload scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	entryID, err := s.cron.AddFunc(s.schedule, func() { s.runReload(runCtx) })
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to schedule catalog reload: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Info().
		Str("schedule", s.schedule).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("Catalog reload scheduler: started")

	go func(done <-chan struct{}) {
		<-done
		s.Stop()
	}(runCtx.Done())

	return nil
}

// Stop stops cron and waits for a running reload to finish.
func (s *CatalogReloadScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.cancel()

	s.isRunning = false
	log.Info().Msg("Catalog reload scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *CatalogReloadScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next reload will occur, or nil when stopped.
func (s *CatalogReloadScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow triggers an immediate reload outside the schedule.
func (s *CatalogReloadScheduler) RunNow(ctx context.Context) error {
	return s.reloader.ReloadCatalog(ctx)
}

func (s *CatalogReloadScheduler) runReload(ctx context.Context) {
	start := time.Now()
	if err := s.reloader.ReloadCatalog(ctx); err != nil {
		log.Error().Err(err).Msg("Catalog reload failed")
		return
	}
	log.Info().Dur("duration", time.Since(start)).Msg("Catalog reload finished")
}
