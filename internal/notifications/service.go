package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sanda94/super-admin-backend/internal/orders"
	"github.com/sanda94/super-admin-backend/pkg/config"
	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/redis"
)

// scopeAll is the cache scope covering every company.
const scopeAll = "all"

// countCache is the slice of the redis client the aggregator needs.
type countCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	PendingCountKey(scope string) string
}

// Service serves the pending-order badge count. The count is a denormalized
// read model: eventually consistent, bounded by the cache TTL, and always
// recomputable from the order store.
type Service interface {
	// CountPending returns the number of orders awaiting a decision, scoped to
	// one company or platform-wide when companyID is nil.
	CountPending(ctx context.Context, companyID *uuid.UUID) (int64, error)
	// Refresh recomputes every cached count from the order store. Run by the
	// background worker.
	Refresh(ctx context.Context) error
}

type service struct {
	repo  orders.Repository
	cache countCache
	logg  *logger.Logger
	cfg   config.NotifyConfig
}

// NewService wires the aggregator.
func NewService(repo orders.Repository, cache countCache, logg *logger.Logger, cfg config.NotifyConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logg: logg, cfg: cfg}, nil
}

func (s *service) CountPending(ctx context.Context, companyID *uuid.UUID) (int64, error) {
	scope := scopeAll
	if companyID != nil {
		scope = companyID.String()
	}
	key := s.cache.PendingCountKey(scope)

	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		if count, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
			return count, nil
		}
	} else if !redis.IsNil(err) {
		// Cache trouble is not fatal; fall back to the store.
		s.logg.Warn(ctx, "pending count cache read failed, falling back to store")
	}

	count, err := s.repo.CountPending(ctx, companyID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}

	if err := s.cache.Set(ctx, key, count, s.cfg.CacheTTL); err != nil {
		s.logg.Warn(ctx, "pending count cache write failed")
	}
	return count, nil
}

func (s *service) Refresh(ctx context.Context) error {
	perCompany, err := s.repo.CountPendingByCompany(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders by company")
	}

	var total int64
	for companyID, count := range perCompany {
		total += count
		key := s.cache.PendingCountKey(companyID.String())
		if err := s.cache.Set(ctx, key, count, s.cfg.CacheTTL); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache pending count")
		}
	}

	if err := s.cache.Set(ctx, s.cache.PendingCountKey(scopeAll), total, s.cfg.CacheTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache platform pending count")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"companies": len(perCompany), "total": total})
	s.logg.Info(ctx, "pending counts refreshed")
	return nil
}
