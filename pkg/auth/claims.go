package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sanda94/super-admin-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	ActorID   uuid.UUID
	CompanyID *uuid.UUID
	Role      enums.MemberRole
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued by the session
// collaborator and consumed by the engine's API surface.
type AccessTokenClaims struct {
	ActorID   uuid.UUID        `json:"actor_id"`
	CompanyID *uuid.UUID       `json:"company_id,omitempty"`
	Role      enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
