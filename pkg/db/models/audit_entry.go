package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sanda94/super-admin-backend/pkg/enums"
)

// AuditEntry records an immutable action taken against an order. Entries are
// appended after their triggering transition commits and are never updated or
// deleted.
type AuditEntry struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Timestamp  time.Time           `gorm:"column:timestamp;not null"`
	ActorID    uuid.UUID           `gorm:"column:actor_id;type:uuid;not null"`
	Category   enums.AuditCategory `gorm:"column:category;type:text;not null"`
	ActionType enums.AuditAction   `gorm:"column:action_type;type:text;not null"`
	ItemID     uuid.UUID           `gorm:"column:item_id;type:uuid;not null"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
}
