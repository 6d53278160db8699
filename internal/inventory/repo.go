package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sanda94/super-admin-backend/pkg/db/models"
)

// Repository manages persistence for per-product stock counters. Both mutation
// helpers are single conditional statements so concurrent callers serialize at
// the row level instead of racing a read-then-write.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error)
	Create(ctx context.Context, record *models.InventoryRecord) error
	// DecrementIfAvailable subtracts qty only when the row holds at least qty.
	// It returns the new available count and whether a row was updated.
	DecrementIfAvailable(ctx context.Context, productID uuid.UUID, qty int) (int, bool, error)
	// Increment adds qty back, returning the new available count and whether
	// the product row exists.
	Increment(ctx context.Context, productID uuid.UUID, qty int) (int, bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Create(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) DecrementIfAvailable(ctx context.Context, productID uuid.UUID, qty int) (int, bool, error) {
	var rows []models.InventoryRecord
	res := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_records
		SET available = available - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND available >= ?
		RETURNING product_id, available, updated_at
	`, qty, productID, qty).Scan(&rows)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].Available, true, nil
}

func (r *repository) Increment(ctx context.Context, productID uuid.UUID, qty int) (int, bool, error) {
	var rows []models.InventoryRecord
	res := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_records
		SET available = available + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ?
		RETURNING product_id, available, updated_at
	`, qty, productID).Scan(&rows)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].Available, true, nil
}
