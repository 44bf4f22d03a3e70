package middleware

import (
	"log/slog"
	"net/http"

	"github.com/prasetya/wiki-management/internal/auth"
)

// RequireAnyRole creates a middleware that lets the request through only
// when the authenticated user holds at least one of the named roles.
// Service layers still enforce their own checks; this just fails fast at
// the edge for whole route groups.
func RequireAnyRole(slugs ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, slug := range slugs {
				if user.HasRole(slug) {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("access denied: required role missing",
				"user_id", user.ID,
				"required_roles", slugs,
				"user_roles", user.Roles)
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
		})
	}
}
