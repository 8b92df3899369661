package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scheduler runs background sweeps on a cron schedule.
type Scheduler struct {
	logger zerolog.Logger
	cron   *cron.Cron
	voting *VotingService
}

// NewScheduler registers the voting window sweep. spec accepts standard cron
// expressions and descriptors such as "@every 1m".
func NewScheduler(voting *VotingService, spec string) (*Scheduler, error) {
	s := &Scheduler{
		logger: log.With().Str("service", "scheduler").Logger(),
		cron:   cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		voting: voting,
	}
	if _, err := s.cron.AddFunc(spec, s.SweepVotingWindow); err != nil {
		return nil, fmt.Errorf("schedule voting sweep %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("starting background scheduler")
	s.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info().Msg("background scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn().Msg("background scheduler did not stop before shutdown deadline")
	}
}

// SweepVotingWindow closes the voting window once its end time has passed.
func (s *Scheduler) SweepVotingWindow() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.voting.CloseExpired(ctx, time.Now()); err != nil {
		s.logger.Error().Err(err).Msg("voting window sweep failed")
	}
}
