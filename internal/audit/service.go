package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/sanda94/super-admin-backend/pkg/config"
	"github.com/sanda94/super-admin-backend/pkg/db/models"
	"github.com/sanda94/super-admin-backend/pkg/enums"
	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/metrics"
)

// Entry is the caller-facing shape of one audit event.
type Entry struct {
	Timestamp time.Time
	ActorID   uuid.UUID
	Action    enums.AuditAction
	ItemID    uuid.UUID
}

// Service records order actions and serves the per-order trail. Record is
// asynchronous and best effort: a failed append is retried with backoff, then
// dropped with a metric, and never fails the triggering operation.
type Service interface {
	Record(ctx context.Context, entry Entry)
	ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]models.AuditEntry, error)
	// Wait blocks until all in-flight appends have settled. Used on shutdown.
	Wait()
}

type service struct {
	repo    Repository
	logg    *logger.Logger
	met     *metrics.AuditMetrics
	cfg     config.AuditConfig
	pending sync.WaitGroup
}

// NewService wires the audit recorder.
func NewService(repo Repository, logg *logger.Logger, met *metrics.AuditMetrics, cfg config.AuditConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 250 * time.Millisecond
	}
	return &service{repo: repo, logg: logg, met: met, cfg: cfg}, nil
}

func (s *service) Record(ctx context.Context, entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	model := &models.AuditEntry{
		Timestamp:  entry.Timestamp,
		ActorID:    entry.ActorID,
		Category:   enums.AuditCategoryOrder,
		ActionType: entry.Action,
		ItemID:     entry.ItemID,
	}

	// Detach from the request lifecycle so a canceled request does not cancel
	// the append, while keeping the request's log fields.
	ctx = context.WithoutCancel(ctx)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.append(ctx, model)
	}()
}

func (s *service) append(ctx context.Context, model *models.AuditEntry) {
	backoff := retry.WithMaxRetries(uint64(s.cfg.MaxAttempts-1), retry.NewExponential(s.cfg.RetryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.repo.Append(ctx, model); err != nil {
			s.met.IncRetry()
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.met.IncDropped()
		s.logg.Error(ctx, "audit entry dropped after retries", err)
		return
	}
	s.met.IncAppended(model.ActionType.String())
}

func (s *service) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	entries, err := s.repo.ListByItem(ctx, itemID, limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.AuditEntry{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}
	return entries, nil
}

func (s *service) Wait() {
	s.pending.Wait()
}
