package middleware

import (
	"net/http"

	"github.com/bookwise/backend/internal/auth/service"
	"github.com/bookwise/backend/internal/models"
)

// RoleMiddleware validates the JWT token and requires the role carried in
// the token to equal requiredRole exactly. There is no role ordering: admin
// routes demand RoleAdmin and nothing else.
func RoleMiddleware(tokenGenerator *service.TokenGenerator, requiredRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "Not Authorized")
				return
			}

			userID, role, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				respondUnauthorized(w, "Not Authorized")
				return
			}

			if role != requiredRole {
				respondUnauthorized(w, "You are not authorized")
				return
			}

			r = withIdentity(r, userID, role)
			next.ServeHTTP(w, r)
		})
	}
}
