package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/sanda94/super-admin-backend/pkg/config"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/metrics"
)

// Service runs registered jobs on a fixed interval, one replica at a time per
// job via the distributed lock.
type Service struct {
	registry *Registry
	locker   Locker
	logg     *logger.Logger
	met      *metrics.CronJobMetrics
	cfg      config.CronConfig
}

// NewService wires the scheduled worker loop.
func NewService(registry *Registry, locker Locker, logg *logger.Logger, met *metrics.CronJobMetrics, cfg config.CronConfig) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry required")
	}
	if locker == nil {
		return nil, fmt.Errorf("locker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	return &Service{registry: registry, locker: locker, logg: logg, met: met, cfg: cfg}, nil
}

// Start blocks until ctx is canceled, running every registered job each tick.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logg.Info(ctx, fmt.Sprintf("cron worker started, interval %s", s.cfg.Interval))

	// Run once at startup so a fresh deploy does not wait a full interval.
	if err := s.RunAll(ctx); err != nil {
		s.logg.Error(ctx, "initial cron run had failures", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "cron worker stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunAll(ctx); err != nil {
				s.logg.Error(ctx, "cron run had failures", err)
			}
		}
	}
}

// RunAll executes every registered job once, collecting failures instead of
// stopping at the first one.
func (s *Service) RunAll(ctx context.Context) error {
	var errs error
	for _, job := range s.registry.Jobs() {
		if err := s.runOne(ctx, job); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("job %s: %w", job.Name(), err))
		}
	}
	return errs
}

func (s *Service) runOne(ctx context.Context, job Job) error {
	jobCtx := s.logg.WithField(ctx, "job", job.Name())

	acquired, err := s.locker.Acquire(jobCtx, job.Name(), s.cfg.LockTTL)
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		s.logg.Info(jobCtx, "job locked by another replica, skipping")
		return nil
	}
	defer func() {
		if err := s.locker.Release(jobCtx, job.Name()); err != nil {
			s.logg.Warn(jobCtx, "releasing job lock failed")
		}
	}()

	started := time.Now()
	err = job.Run(jobCtx)
	s.met.ObserveDuration(job.Name(), time.Since(started))
	if err != nil {
		s.met.IncFailure(job.Name())
		s.logg.Error(jobCtx, "job failed", err)
		return err
	}
	s.met.IncSuccess(job.Name())
	s.logg.Info(jobCtx, "job completed")
	return nil
}
