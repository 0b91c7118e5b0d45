package user

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// Actor is the authenticated caller as asserted by the identity provider. The
// engine never re-derives identity; a request without a verifiable actor is a
// hard failure, never an implicit fallback user.
type Actor struct {
	UserID string
	Role   Role
}

// ActorFromContext extracts the authenticated actor from the JWT claims put
// in the context by the verifier middleware.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrUnauthenticated
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return Actor{}, ErrUnauthenticated
	}
	role := Role(roleStr)
	if !role.Valid() {
		return Actor{}, ErrUnauthenticated
	}

	return Actor{UserID: userID, Role: role}, nil
}
