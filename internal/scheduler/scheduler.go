package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type bookingSweeper interface {
	CancelStalePending(ctx context.Context) (int64, error)
}

// Scheduler runs the daily sweep that cancels abandoned pending bookings.
type Scheduler struct {
	sweeper bookingSweeper
	spec    string
	logger  *slog.Logger
	cron    *cron.Cron
}

func New(sweeper bookingSweeper, spec string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sweeper: sweeper,
		spec:    spec,
		logger:  logger,
		cron:    cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("booking sweep scheduled", "spec", s.spec)
	return nil
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("booking sweep stopped")
}

func (s *Scheduler) run() {
	count, err := s.sweeper.CancelStalePending(context.Background())
	if err != nil {
		s.logger.Error("daily booking sweep failed", "error", err)
		return
	}
	s.logger.Info("daily booking sweep completed", "cancelled", count)
}
