package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/logger"
	"github.com/rs/zerolog"
)

// Scheduler runs payment status reconciliation once a day for a fixed set of schools.
type Scheduler struct {
	service   *FeeService
	schoolIDs []string
	hour      int
	minute    int
	lastRun   string
	log       zerolog.Logger
}

// NewScheduler creates a scheduler that fires daily at the given HH:MM.
func NewScheduler(service *FeeService, schoolIDs []string, at string) (*Scheduler, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("invalid reconcile time %q: %w", at, err)
	}
	return &Scheduler{
		service:   service,
		schoolIDs: schoolIDs,
		hour:      t.Hour(),
		minute:    t.Minute(),
		log:       logger.WithComponent("scheduler"),
	}, nil
}

// Start runs the scheduler until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.log.Info().
			Strs("schools", s.schoolIDs).
			Str("at", fmt.Sprintf("%02d:%02d", s.hour, s.minute)).
			Msg("Scheduler started")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info().Msg("Scheduler stopped")
				return
			case <-ticker.C:
				now := s.service.now()
				if s.due(now) {
					s.lastRun = now.Format("2006-01-02")
					s.RunOnce(ctx)
				}
			}
		}
	}()
}

func (s *Scheduler) due(now time.Time) bool {
	if now.Hour() != s.hour || now.Minute() != s.minute {
		return false
	}
	return s.lastRun != now.Format("2006-01-02")
}

// RunOnce reconciles every configured school. A failing school is logged and
// the remaining schools still run.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.log.Info().Msg("Triggering scheduled payment status reconciliation")
	for _, schoolID := range s.schoolIDs {
		result, err := s.service.ReconcilePaymentStatuses(ctx, schoolID)
		if err != nil {
			s.log.Error().Err(err).Str("school_id", schoolID).Msg("Scheduled reconciliation failed")
			continue
		}
		s.log.Info().
			Str("school_id", schoolID).
			Int("updated", result.UpdatedCount).
			Msg("Scheduled reconciliation finished")
	}
}
