package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Purger deletes journal rows older than a retention window.
type Purger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler runs the quote journal housekeeping on a cron spec (with seconds).
type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	retention time.Duration
	ctx       context.Context
}

func New(ctx context.Context, purger Purger, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		purger:    purger,
		retention: retention,
		ctx:       ctx,
	}
}

func (s *Scheduler) Register(purgeSpec string) error {
	if s.retention <= 0 {
		return fmt.Errorf("retention must be positive, got %s", s.retention)
	}
	if _, err := s.cron.AddFunc(purgeSpec, s.PurgeNow); err != nil {
		return fmt.Errorf("register purge task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop waits for a running purge to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// PurgeNow runs one purge immediately.
func (s *Scheduler) PurgeNow() {
	ctx, cancel := context.WithTimeout(s.ctx, time.Minute)
	defer cancel()

	n, err := s.purger.PurgeExpired(ctx, s.retention)
	if err != nil {
		log.Error().Err(err).Msg("quote purge failed")
		return
	}
	log.Info().Int64("deleted", n).Dur("retention", s.retention).Msg("quote journal purged")
}
