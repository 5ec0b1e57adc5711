package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireAdmin guards destructive routes; payroll operators can edit
// and import but not bulk-delete.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Admin access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
