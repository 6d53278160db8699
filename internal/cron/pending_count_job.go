package cron

import (
	"context"

	"github.com/sanda94/super-admin-backend/internal/notifications"
)

// PendingCountJob recomputes the cached pending-order counts so stale badges
// converge without waiting for a cache miss.
type PendingCountJob struct {
	notify notifications.Service
}

// NewPendingCountJob returns the refresh job.
func NewPendingCountJob(notify notifications.Service) *PendingCountJob {
	return &PendingCountJob{notify: notify}
}

func (j *PendingCountJob) Name() string {
	return "pending_count_refresh"
}

func (j *PendingCountJob) Run(ctx context.Context) error {
	return j.notify.Refresh(ctx)
}
