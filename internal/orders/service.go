package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sanda94/super-admin-backend/internal/audit"
	"github.com/sanda94/super-admin-backend/internal/inventory"
	"github.com/sanda94/super-admin-backend/pkg/db/models"
	"github.com/sanda94/super-admin-backend/pkg/enums"
	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/pagination"
)

// Service is the order lifecycle engine. All status changes flow through
// ApplyTransition; there is no path that writes a status directly.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID, actor Actor) (*models.Order, error)
	ApplyTransition(ctx context.Context, input TransitionInput) (*models.Order, error)
	EditOrder(ctx context.Context, input EditInput) (*models.Order, error)
	DeleteOrder(ctx context.Context, input DeleteInput) error
	ListOrders(ctx context.Context, filter ListFilter, params pagination.Params, actor Actor) (*OrderPage, error)
}

type service struct {
	repo      Repository
	inventory inventory.Service
	audit     audit.Service
	logg      *logger.Logger
}

// NewService wires the engine with its collaborators.
func NewService(repo Repository, inv inventory.Service, aud audit.Service, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if inv == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if aud == nil {
		return nil, fmt.Errorf("audit service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, inventory: inv, audit: aud, logg: logg}, nil
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if input.CompanyID == uuid.Nil || input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id and product id required")
	}
	if input.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}

	expected := input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
	if !input.TotalPrice.Equal(expected) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total price must equal unit price times quantity").
			WithDetails(map[string]any{"expected_total": expected.String()})
	}

	available, err := s.inventory.Available(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if available < input.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientInventory, "insufficient inventory").
			WithDetails(map[string]any{"available": available, "requested": input.Quantity})
	}

	flag := input.ApprovalFlag
	if flag == "" {
		flag = enums.ApprovalFlagNo
	}
	if !flag.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid approval flag")
	}

	order := &models.Order{
		CompanyID:    input.CompanyID,
		ProductID:    input.ProductID,
		ProductName:  input.ProductName,
		UnitPrice:    input.UnitPrice,
		Quantity:     input.Quantity,
		TotalPrice:   input.TotalPrice,
		Status:       enums.OrderStatusNewRequest,
		ApprovalFlag: flag,
		Message:      input.Message,
		Version:      1,
		CreatedByID:  input.Actor.ID,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID, actor Actor) (*models.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(order, actor); err != nil {
		return nil, err
	}
	return order, nil
}

// ApplyTransition validates and applies one workflow command. The write is
// conditioned on the version the caller read; losing the race yields a
// retryable conflict and leaves the order untouched.
func (s *service) ApplyTransition(ctx context.Context, input TransitionInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ExpectedVersion <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expected version required")
	}
	if !input.Actor.Role.IsValid() || input.Actor.Role == enums.MemberRoleCustomer {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not drive the order workflow")
	}
	edge, ok := transitionTable[input.Command]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order command")
	}

	order, err := s.load(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Version != input.ExpectedVersion {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order changed since it was read").
			WithDetails(map[string]any{"current_version": order.Version})
	}
	if order.Status != edge.from {
		if order.Status.IsTerminal() {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is in a terminal state").
				WithDetails(map[string]any{"status": order.Status.String()})
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("command %s not allowed in state %s", input.Command, order.Status)).
			WithDetails(map[string]any{"status": order.Status.String()})
	}
	if input.Command == enums.OrderCommandDeliver && !order.DeliveryVerified {
		return nil, pkgerrors.New(pkgerrors.CodeVerificationPending, "delivery verification pending")
	}

	// Approval commits stock before the status write. If the status write then
	// fails for any reason, the decrement is compensated so the ledger never
	// leaks units for an order that is still pending.
	stockCommitted := false
	if input.Command == enums.OrderCommandApprove {
		if _, err := s.inventory.TryDecrement(ctx, order.ProductID, order.Quantity); err != nil {
			return nil, err
		}
		stockCommitted = true
	}

	updates := map[string]any{
		"status":        edge.to.String(),
		"last_actor_id": input.Actor.ID,
	}
	if input.Message != nil {
		updates["message"] = *input.Message
	}

	affected, err := s.repo.UpdateVersioned(ctx, order.ID, order.Version, updates)
	if err != nil {
		if stockCommitted {
			s.compensate(ctx, order)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist transition")
	}
	if affected == 0 {
		if stockCommitted {
			s.compensate(ctx, order)
		}
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order changed since it was read")
	}

	order.Status = edge.to
	order.Version++
	order.LastActorID = &input.Actor.ID
	if input.Message != nil {
		order.Message = input.Message
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID: input.Actor.ID,
		Action:  edge.action,
		ItemID:  order.ID,
	})
	return order, nil
}

// compensate restores stock for a decrement whose transition did not persist.
// Failure here is logged and surfaced via metrics on the inventory side; the
// caller still reports the original error.
func (s *service) compensate(ctx context.Context, order *models.Order) {
	if _, err := s.inventory.Increment(ctx, order.ProductID, order.Quantity); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_id":   order.ID.String(),
			"product_id": order.ProductID.String(),
			"quantity":   order.Quantity,
		})
		s.logg.Error(ctx, "inventory compensation failed, ledger out of sync", err)
	}
}

func (s *service) EditOrder(ctx context.Context, input EditInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ExpectedVersion <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expected version required")
	}
	if input.Message == nil && input.DeliveryDate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	order, err := s.load(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(order, input.Actor); err != nil {
		return nil, err
	}
	if order.Version != input.ExpectedVersion {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order changed since it was read").
			WithDetails(map[string]any{"current_version": order.Version})
	}
	// The message stays editable after the workflow ends; the delivery date is
	// frozen once the order reaches a terminal state.
	if input.DeliveryDate != nil && order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "delivery date is locked in a terminal state").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	updates := map[string]any{
		"last_actor_id": input.Actor.ID,
	}
	if input.Message != nil {
		updates["message"] = *input.Message
	}
	if input.DeliveryDate != nil {
		updates["delivery_date"] = *input.DeliveryDate
	}

	affected, err := s.repo.UpdateVersioned(ctx, order.ID, order.Version, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order edit")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order changed since it was read")
	}

	order.Version++
	order.LastActorID = &input.Actor.ID
	if input.Message != nil {
		order.Message = input.Message
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = input.DeliveryDate
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID: input.Actor.ID,
		Action:  enums.AuditActionOrderUpdated,
		ItemID:  order.ID,
	})
	return order, nil
}

func (s *service) DeleteOrder(ctx context.Context, input DeleteInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.load(ctx, input.OrderID)
	if err != nil {
		return err
	}

	if !input.Actor.Role.IsElevated() {
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "completed orders require an elevated role to delete")
		}
		if order.ApprovalFlag == enums.ApprovalFlagYes {
			return pkgerrors.New(pkgerrors.CodeForbidden, "externally approved orders require an elevated role to delete")
		}
		if order.CreatedByID != input.Actor.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the creating actor may delete this order")
		}
	}

	affected, err := s.repo.Delete(ctx, order.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID: input.Actor.ID,
		Action:  enums.AuditActionOrderDeleted,
		ItemID:  order.ID,
	})
	return nil
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter, params pagination.Params, actor Actor) (*OrderPage, error) {
	// Non-elevated callers only see their own company.
	if !actor.Role.IsElevated() {
		if actor.CompanyID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "caller has no company scope")
		}
		filter.CompanyID = actor.CompanyID
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	rows, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &OrderPage{Orders: rows}
	if len(rows) > limit {
		page.Orders = rows[:limit]
		last := page.Orders[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) authorizeRead(order *models.Order, actor Actor) error {
	if actor.Role.IsElevated() {
		return nil
	}
	if actor.CompanyID != nil && *actor.CompanyID == order.CompanyID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another company")
}
