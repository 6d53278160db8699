package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sanda94/super-admin-backend/pkg/config"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/metrics"
)

type stubJob struct {
	name string
	runs int
	err  error
}

func (j *stubJob) Name() string {
	return j.name
}

func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

type stubLocker struct {
	denied   map[string]bool
	acquired []string
	released []string
	err      error
}

func (l *stubLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.denied[name] {
		return false, nil
	}
	l.acquired = append(l.acquired, name)
	return true, nil
}

func (l *stubLocker) Release(ctx context.Context, name string) error {
	l.released = append(l.released, name)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, registry *Registry, locker Locker) *Service {
	t.Helper()
	svc, err := NewService(registry, locker, testLogger(), metrics.NewCronJobMetrics(nil), config.CronConfig{Interval: time.Minute, LockTTL: time.Minute})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&stubJob{name: "refresh"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := registry.Register(&stubJob{name: "refresh"}); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected nil job error")
	}
}

func TestRunAllExecutesEveryJob(t *testing.T) {
	registry := NewRegistry()
	first := &stubJob{name: "first"}
	second := &stubJob{name: "second"}
	registry.Register(first)
	registry.Register(second)
	locker := &stubLocker{}
	svc := newTestService(t, registry, locker)

	if err := svc.RunAll(context.Background()); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if first.runs != 1 || second.runs != 1 {
		t.Fatalf("expected each job once got %d/%d", first.runs, second.runs)
	}
	if len(locker.released) != 2 {
		t.Fatalf("expected locks released, got %v", locker.released)
	}
}

func TestRunAllSkipsLockedJobs(t *testing.T) {
	registry := NewRegistry()
	job := &stubJob{name: "held"}
	registry.Register(job)
	locker := &stubLocker{denied: map[string]bool{"held": true}}
	svc := newTestService(t, registry, locker)

	if err := svc.RunAll(context.Background()); err != nil {
		t.Fatalf("lock contention is not an error, got %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("locked job must not run, ran %d times", job.runs)
	}
}

func TestRunAllCollectsFailures(t *testing.T) {
	registry := NewRegistry()
	failing := &stubJob{name: "failing", err: errors.New("boom")}
	healthy := &stubJob{name: "healthy"}
	registry.Register(failing)
	registry.Register(healthy)
	svc := newTestService(t, registry, &stubLocker{})

	err := svc.RunAll(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if healthy.runs != 1 {
		t.Fatal("failure in one job must not stop the others")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	registry := NewRegistry()
	job := &stubJob{name: "tick"}
	registry.Register(job)
	svc, err := NewService(registry, &stubLocker{}, testLogger(), metrics.NewCronJobMetrics(nil), config.CronConfig{Interval: 5 * time.Millisecond, LockTTL: time.Minute})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := svc.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded got %v", err)
	}
	if job.runs == 0 {
		t.Fatal("expected at least the startup run")
	}
}
