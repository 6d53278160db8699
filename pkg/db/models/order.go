package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanda94/super-admin-backend/pkg/enums"
)

// Order is the durable order record mutated only through validated transitions.
// Version is the optimistic concurrency counter; every successful write bumps
// it, and every write is conditioned on the version read at load time.
type Order struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID        uuid.UUID          `gorm:"column:company_id;type:uuid;not null"`
	ProductID        uuid.UUID          `gorm:"column:product_id;type:uuid;not null"`
	ProductName      string             `gorm:"column:product_name;not null"`
	UnitPrice        decimal.Decimal    `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity         int                `gorm:"column:quantity;not null"`
	TotalPrice       decimal.Decimal    `gorm:"column:total_price;type:numeric(12,2);not null"`
	Status           enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'new_request'"`
	DeliveryVerified bool               `gorm:"column:delivery_verified;not null;default:false"`
	ApprovalFlag     enums.ApprovalFlag `gorm:"column:approval_flag;type:text;not null;default:'no'"`
	Message          *string            `gorm:"column:message"`
	DeliveryDate     *time.Time         `gorm:"column:delivery_date"`
	Version          int64              `gorm:"column:version;not null;default:1"`
	CreatedByID      uuid.UUID          `gorm:"column:created_by_id;type:uuid;not null"`
	LastActorID      *uuid.UUID         `gorm:"column:last_actor_id;type:uuid"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// PriceConsistent reports whether total price equals unit price times quantity.
// The invariant is checked at creation and never recomputed on edit.
func (o Order) PriceConsistent() bool {
	expected := o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
	return o.TotalPrice.Equal(expected)
}
