package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord tracks the available stock count per product. The column is
// mutated exclusively through the ledger's conditional SQL updates; nothing
// reads available and writes back a derived value.
type InventoryRecord struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Available int       `gorm:"column:available;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
