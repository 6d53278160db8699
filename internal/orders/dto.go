package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanda94/super-admin-backend/pkg/db/models"
	"github.com/sanda94/super-admin-backend/pkg/enums"
)

// Actor identifies the authenticated caller of an order operation.
type Actor struct {
	ID        uuid.UUID
	CompanyID *uuid.UUID
	Role      enums.MemberRole
}

// PlaceOrderInput creates a new order in the initial state.
type PlaceOrderInput struct {
	CompanyID    uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	UnitPrice    decimal.Decimal
	Quantity     int
	TotalPrice   decimal.Decimal
	ApprovalFlag enums.ApprovalFlag
	Message      *string
	Actor        Actor
}

// TransitionInput applies one workflow command to an order.
type TransitionInput struct {
	OrderID         uuid.UUID
	Command         enums.OrderCommand
	ExpectedVersion int64
	Message         *string
	Actor           Actor
}

// EditInput updates the mutable annotation fields outside the state machine.
// Nil fields are left untouched.
type EditInput struct {
	OrderID         uuid.UUID
	ExpectedVersion int64
	Message         *string
	DeliveryDate    *time.Time
	Actor           Actor
}

// DeleteInput removes an order subject to the capability rules.
type DeleteInput struct {
	OrderID uuid.UUID
	Actor   Actor
}

// ListFilter narrows the order listing.
type ListFilter struct {
	CompanyID *uuid.UUID
	Status    *enums.OrderStatus
}

// OrderPage is one page of a cursor-based listing.
type OrderPage struct {
	Orders     []models.Order
	NextCursor string
}
