package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sanda94/super-admin-backend/internal/orders"
	"github.com/sanda94/super-admin-backend/pkg/config"
	"github.com/sanda94/super-admin-backend/pkg/db/models"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/pagination"
)

type stubCountRepo struct {
	total      int64
	perCompany map[uuid.UUID]int64
	countCalls int
	err        error
}

func (s *stubCountRepo) WithTx(tx *gorm.DB) orders.Repository {
	return s
}

func (s *stubCountRepo) Create(ctx context.Context, order *models.Order) error {
	return nil
}

func (s *stubCountRepo) Find(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCountRepo) UpdateVersioned(ctx context.Context, id uuid.UUID, expectedVersion int64, updates map[string]any) (int64, error) {
	return 0, nil
}

func (s *stubCountRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubCountRepo) List(ctx context.Context, filter orders.ListFilter, params pagination.Params) ([]models.Order, error) {
	return nil, nil
}

func (s *stubCountRepo) CountPending(ctx context.Context, companyID *uuid.UUID) (int64, error) {
	s.countCalls++
	if s.err != nil {
		return 0, s.err
	}
	if companyID == nil {
		return s.total, nil
	}
	return s.perCompany[*companyID], nil
}

func (s *stubCountRepo) CountPendingByCompany(ctx context.Context) (map[uuid.UUID]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.perCompany, nil
}

type stubCache struct {
	data map[string]string
	sets map[string]time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]string), sets: make(map[string]time.Duration)}
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.data[key] = fmt.Sprint(value)
	s.sets[key] = ttl
	return nil
}

func (s *stubCache) PendingCountKey(scope string) string {
	return "sa:counter:pending_orders:" + scope
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestCountPendingServesCachedValue(t *testing.T) {
	repo := &stubCountRepo{total: 99}
	cache := newStubCache()
	cache.data[cache.PendingCountKey("all")] = "4"
	svc, err := NewService(repo, cache, testLogger(), config.NotifyConfig{CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	count, err := svc.CountPending(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if count != 4 {
		t.Fatalf("expected cached 4 got %d", count)
	}
	if repo.countCalls != 0 {
		t.Fatalf("cache hit must not query the store, got %d calls", repo.countCalls)
	}
}

func TestCountPendingFallsBackToStoreAndCaches(t *testing.T) {
	companyID := uuid.New()
	repo := &stubCountRepo{perCompany: map[uuid.UUID]int64{companyID: 7}}
	cache := newStubCache()
	svc, _ := NewService(repo, cache, testLogger(), config.NotifyConfig{CacheTTL: 30 * time.Second})

	count, err := svc.CountPending(context.Background(), &companyID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7 got %d", count)
	}
	key := cache.PendingCountKey(companyID.String())
	if cache.data[key] != "7" {
		t.Fatalf("expected cached value, got %q", cache.data[key])
	}
	if cache.sets[key] != 30*time.Second {
		t.Fatalf("expected TTL bound write, got %s", cache.sets[key])
	}
}

func TestCountPendingIgnoresGarbageCacheValue(t *testing.T) {
	repo := &stubCountRepo{total: 12}
	cache := newStubCache()
	cache.data[cache.PendingCountKey("all")] = "not-a-number"
	svc, _ := NewService(repo, cache, testLogger(), config.NotifyConfig{CacheTTL: time.Minute})

	count, err := svc.CountPending(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if count != 12 {
		t.Fatalf("expected store value got %d", count)
	}
}

func TestRefreshWritesAllScopes(t *testing.T) {
	companyA := uuid.New()
	companyB := uuid.New()
	repo := &stubCountRepo{perCompany: map[uuid.UUID]int64{companyA: 3, companyB: 5}}
	cache := newStubCache()
	svc, _ := NewService(repo, cache, testLogger(), config.NotifyConfig{CacheTTL: time.Minute})

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if got := cache.data[cache.PendingCountKey(companyA.String())]; got != "3" {
		t.Fatalf("company A: expected 3 got %q", got)
	}
	if got := cache.data[cache.PendingCountKey(companyB.String())]; got != "5" {
		t.Fatalf("company B: expected 5 got %q", got)
	}
	total, err := strconv.ParseInt(cache.data[cache.PendingCountKey("all")], 10, 64)
	if err != nil || total != 8 {
		t.Fatalf("expected platform total 8 got %q", cache.data[cache.PendingCountKey("all")])
	}
}

func TestRefreshPropagatesStoreErrors(t *testing.T) {
	repo := &stubCountRepo{err: errors.New("connection refused")}
	svc, _ := NewService(repo, newStubCache(), testLogger(), config.NotifyConfig{CacheTTL: time.Minute})

	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
