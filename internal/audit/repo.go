package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanda94/super-admin-backend/pkg/db/models"
	"github.com/sanda94/super-admin-backend/pkg/pagination"
)

// Repository persists the append-only audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, entry *models.AuditEntry) error
	// ListByItem returns entries for one item ordered by event time ascending,
	// ties broken by insertion order.
	ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]models.AuditEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an audit repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Append(ctx context.Context, entry *models.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("timestamp ASC, created_at ASC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
