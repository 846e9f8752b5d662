package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mputra/treasury-management/internal/auth"
)

// RequirePolicy gates a route on the entity's rule table. The decision is
// role-only: the target instance is never inspected.
func RequirePolicy(entity auth.Entity, action auth.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok || actor == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !auth.Authorize(actor.Role, action, entity) {
				slog.Warn("access denied by policy",
					"user_id", actor.ID,
					"role", string(actor.Role),
					"action", string(action),
					"entity", string(entity))
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
