package subscription

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// monthlyResetSchedule fires at the first instant of every calendar
// month. The scheduler pins the cron clock to UTC so the boundary does
// not drift with the host timezone.
const monthlyResetSchedule = "0 0 1 * *"

// resetTimeout bounds a single reset run; the bulk update is one
// statement per store, so a run that takes longer than this is stuck.
const resetTimeout = 5 * time.Minute

// Scheduler runs the monthly usage reset on a cron schedule. It is a
// thin wrapper so that services embedding the package can keep the
// reset in-process instead of deploying a separate job.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
	log  *slog.Logger
}

// NewScheduler creates a scheduler that resets monthly usage counters
// through the given service at the start of every month, UTC.
func NewScheduler(svc *Service, log *slog.Logger) *Scheduler {
	if svc == nil {
		panic("subscription: scheduler requires a service")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		svc:  svc,
		log:  log,
	}
}

// Start registers the reset job and starts the cron loop in its own
// goroutine. Safe to call once; the returned error only reports a bad
// schedule expression.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(monthlyResetSchedule, s.runReset)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for an in-flight reset to finish or
// the context to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runReset() {
	ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
	defer cancel()

	if _, err := s.svc.ResetMonthlyUsage(ctx); err != nil {
		// The job fires again next month; a failed run is logged, not
		// retried, since a partial reset would double-count quota.
		s.log.ErrorContext(ctx, "monthly usage reset failed", slog.Any("error", err))
	}
}
