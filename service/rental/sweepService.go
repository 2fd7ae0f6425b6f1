package rentalsvc

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler runs the overdue sweep on a fixed interval until its context
// is cancelled. The interval is injected so tests do not wait a day.
type Scheduler struct {
	svc      Service
	interval time.Duration
	log      *slog.Logger
}

func NewScheduler(svc Service, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{svc: svc, interval: interval, log: log}
}

func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			flipped, err := s.svc.SweepOverdue(ctx)
			if err != nil {
				s.log.Error("overdue sweep finished with failures", "flipped", flipped, "err", err)
				continue
			}
			s.log.Info("overdue sweep done", "flipped", flipped)
		}
	}
}
