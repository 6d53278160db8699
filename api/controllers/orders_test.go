package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sanda94/super-admin-backend/api/middleware"
	internalorders "github.com/sanda94/super-admin-backend/internal/orders"
	"github.com/sanda94/super-admin-backend/pkg/db/models"
	"github.com/sanda94/super-admin-backend/pkg/enums"
	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
	"github.com/sanda94/super-admin-backend/pkg/pagination"
	"github.com/sanda94/super-admin-backend/pkg/types"
)

type stubOrdersService struct {
	order         *models.Order
	transitionIn  internalorders.TransitionInput
	transitionErr error
	deleteIn      internalorders.DeleteInput
}

func (s *stubOrdersService) PlaceOrder(ctx context.Context, input internalorders.PlaceOrderInput) (*models.Order, error) {
	return s.order, nil
}

func (s *stubOrdersService) GetOrder(ctx context.Context, id uuid.UUID, actor internalorders.Actor) (*models.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.order, nil
}

func (s *stubOrdersService) ApplyTransition(ctx context.Context, input internalorders.TransitionInput) (*models.Order, error) {
	s.transitionIn = input
	if s.transitionErr != nil {
		return nil, s.transitionErr
	}
	return s.order, nil
}

func (s *stubOrdersService) EditOrder(ctx context.Context, input internalorders.EditInput) (*models.Order, error) {
	return s.order, nil
}

func (s *stubOrdersService) DeleteOrder(ctx context.Context, input internalorders.DeleteInput) error {
	s.deleteIn = input
	return nil
}

func (s *stubOrdersService) ListOrders(ctx context.Context, filter internalorders.ListFilter, params pagination.Params, actor internalorders.Actor) (*internalorders.OrderPage, error) {
	return &internalorders.OrderPage{}, nil
}

func authedRequest(t *testing.T, method, target string, body string, orderID uuid.UUID) *http.Request {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := middleware.WithActorID(req.Context(), uuid.NewString())
	ctx = middleware.WithRole(ctx, string(enums.MemberRoleManager))
	ctx = middleware.WithCompanyID(ctx, uuid.NewString())

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", orderID.String())
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return req.WithContext(ctx)
}

func TestTransitionOrderHappyPath(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{order: &models.Order{ID: orderID, Status: enums.OrderStatusConfirm, Version: 2}}

	req := authedRequest(t, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/transition",
		`{"command":"approve","expected_version":1}`, orderID)
	w := httptest.NewRecorder()
	TransitionOrder(svc, nil)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if svc.transitionIn.Command != enums.OrderCommandApprove {
		t.Fatalf("unexpected command %s", svc.transitionIn.Command)
	}
	if svc.transitionIn.ExpectedVersion != 1 {
		t.Fatalf("unexpected version %d", svc.transitionIn.ExpectedVersion)
	}
	if svc.transitionIn.OrderID != orderID {
		t.Fatalf("unexpected order id %s", svc.transitionIn.OrderID)
	}
	if svc.transitionIn.Actor.Role != enums.MemberRoleManager {
		t.Fatalf("unexpected actor role %s", svc.transitionIn.Actor.Role)
	}
}

func TestTransitionOrderRejectsUnknownCommand(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{}

	req := authedRequest(t, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/transition",
		`{"command":"undo","expected_version":1}`, orderID)
	w := httptest.NewRecorder()
	TransitionOrder(svc, nil)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestTransitionOrderMapsConflict(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{
		transitionErr: pkgerrors.New(pkgerrors.CodeConflict, "order changed since it was read"),
	}

	req := authedRequest(t, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/transition",
		`{"command":"approve","expected_version":1}`, orderID)
	w := httptest.NewRecorder()
	TransitionOrder(svc, nil)(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !body.Error.Retryable {
		t.Fatal("conflicts must surface as retryable")
	}
}

func TestTransitionOrderRequiresValidOrderID(t *testing.T) {
	svc := &stubOrdersService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/not-a-uuid/transition",
		strings.NewReader(`{"command":"approve","expected_version":1}`))
	ctx := middleware.WithActorID(req.Context(), uuid.NewString())
	ctx = middleware.WithRole(ctx, string(enums.MemberRoleManager))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", "not-a-uuid")
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	w := httptest.NewRecorder()
	TransitionOrder(svc, nil)(w, req.WithContext(ctx))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestDeleteOrderPassesActor(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrdersService{order: &models.Order{ID: orderID}}

	req := authedRequest(t, http.MethodDelete, "/api/v1/orders/"+orderID.String(), "", orderID)
	w := httptest.NewRecorder()
	DeleteOrder(svc, nil)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if svc.deleteIn.OrderID != orderID {
		t.Fatalf("unexpected order id %s", svc.deleteIn.OrderID)
	}
	if svc.deleteIn.Actor.ID == uuid.Nil {
		t.Fatal("expected actor propagated")
	}
}

func TestOrderDetailNotFound(t *testing.T) {
	svc := &stubOrdersService{}
	orderID := uuid.New()

	req := authedRequest(t, http.MethodGet, "/api/v1/orders/"+orderID.String(), "", orderID)
	w := httptest.NewRecorder()
	OrderDetail(svc, nil)(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
