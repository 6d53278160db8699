package controllers

import (
	"net/http"

	"github.com/sanda94/super-admin-backend/api/responses"
	"github.com/sanda94/super-admin-backend/api/validators"
	internalaudit "github.com/sanda94/super-admin-backend/internal/audit"
	internalorders "github.com/sanda94/super-admin-backend/internal/orders"
	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
	"github.com/sanda94/super-admin-backend/pkg/logger"
	"github.com/sanda94/super-admin-backend/pkg/pagination"
)

// OrderAuditTrail returns the chronological audit entries for one order. The
// order is loaded first so company scoping applies before any trail is shown.
func OrderAuditTrail(ordersSvc internalorders.Service, auditSvc internalaudit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ordersSvc == nil || auditSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := ordersSvc.GetOrder(r.Context(), orderID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := auditSvc.ListByItem(r.Context(), orderID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
