package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/handler/http/response"
)

// RequireRole gates a route to the given roles. This is coarse transport
// gating only: department scoping and similar checks are re-validated in the
// services.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := make(map[user.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			if !allowed[user.Role(roleStr)] {
				response.HandleError(w, user.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}
