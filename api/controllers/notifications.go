package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sanda94/super-admin-backend/api/responses"
	internalnotifications "github.com/sanda94/super-admin-backend/internal/notifications"
	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
	"github.com/sanda94/super-admin-backend/pkg/logger"
)

// PendingCount returns the badge count of orders awaiting a decision. The
// count is eventually consistent; clients treat it as a hint, not a ledger.
func PendingCount(svc internalnotifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Admins may request any scope; everyone else is pinned to their company.
		var companyID *uuid.UUID
		if actor.Role.IsElevated() {
			if raw := strings.TrimSpace(r.URL.Query().Get("company_id")); raw != "" {
				parsed, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid company id"))
					return
				}
				companyID = &parsed
			}
		} else {
			if actor.CompanyID == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "caller has no company scope"))
				return
			}
			companyID = actor.CompanyID
		}

		count, err := svc.CountPending(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"pending": count})
	}
}
