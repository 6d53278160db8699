package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sanda94/super-admin-backend/api/middleware"
	internalorders "github.com/sanda94/super-admin-backend/internal/orders"
	"github.com/sanda94/super-admin-backend/pkg/enums"
	pkgerrors "github.com/sanda94/super-admin-backend/pkg/errors"
)

// actorFromRequest rebuilds the authenticated actor from the values the auth
// middleware seeded into the request context.
func actorFromRequest(r *http.Request) (internalorders.Actor, error) {
	ctx := r.Context()

	rawActorID := middleware.ActorIDFromContext(ctx)
	if rawActorID == "" {
		return internalorders.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing actor context")
	}
	actorID, err := uuid.Parse(rawActorID)
	if err != nil {
		return internalorders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid actor id")
	}

	role, err := enums.ParseMemberRole(middleware.RoleFromContext(ctx))
	if err != nil {
		return internalorders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid actor role")
	}

	actor := internalorders.Actor{ID: actorID, Role: role}
	if rawCompanyID := middleware.CompanyIDFromContext(ctx); rawCompanyID != "" {
		companyID, err := uuid.Parse(rawCompanyID)
		if err != nil {
			return internalorders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid company id")
		}
		actor.CompanyID = &companyID
	}
	return actor, nil
}
