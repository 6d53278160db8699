package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
)

// Service is the stock ledger. It owns every mutation of the available
// counter; collaborators never read available and write back a derived value.
type Service interface {
	// TryDecrement atomically commits qty units of stock. It fails with
	// CodeInsufficientInventory when the product holds fewer than qty units.
	TryDecrement(ctx context.Context, productID uuid.UUID, qty int) (int, error)
	// Increment restores qty units. Used only to compensate a decrement whose
	// enclosing transition failed to persist.
	Increment(ctx context.Context, productID uuid.UUID, qty int) (int, error)
	// Available returns the current stock count for the product.
	Available(ctx context.Context, productID uuid.UUID) (int, error)
}

type service struct {
	repo Repository
}

// NewService wires the ledger with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) TryDecrement(ctx context.Context, productID uuid.UUID, qty int) (int, error) {
	if productID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if qty <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	available, updated, err := s.repo.DecrementIfAvailable(ctx, productID, qty)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement inventory")
	}
	if updated {
		return available, nil
	}

	// No row matched: either the product is unknown or stock is short.
	record, err := s.repo.Find(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory record")
	}
	return record.Available, pkgerrors.New(pkgerrors.CodeInsufficientInventory, "insufficient inventory").
		WithDetails(map[string]any{"available": record.Available, "requested": qty})
}

func (s *service) Increment(ctx context.Context, productID uuid.UUID, qty int) (int, error) {
	if productID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if qty <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	available, found, err := s.repo.Increment(ctx, productID, qty)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment inventory")
	}
	if !found {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
	}
	return available, nil
}

func (s *service) Available(ctx context.Context, productID uuid.UUID) (int, error) {
	if productID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	record, err := s.repo.Find(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory record")
	}
	return record.Available, nil
}
