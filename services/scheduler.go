package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	logger = resolveLogger(logger).With("module", "scheduler", "layer", "service")
	cronLogger := cronLogAdapter{logger: logger}
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cronLogger), cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		logger: logger,
	}
}

// Add registers job under spec, a standard five-field cron expression or a
// descriptor such as "@hourly".
func (s *Scheduler) Add(name, spec string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(context.Background()); err != nil {
			s.logger.Error("scheduled job failed", "event", "scheduler.job_failed", "job", name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.logger.Info("job scheduled", "event", "scheduler.add", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "event", "scheduler.start", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

type cronLogAdapter struct {
	logger *slog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}
