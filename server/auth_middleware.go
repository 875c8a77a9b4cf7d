package server

import (
	"context"
	"net/http"

	"github.com/caredesk/go-admin-portal/backend"
	"github.com/caredesk/go-admin-portal/bootstrap"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated user
	ContextKeyUser ContextKey = "user"
)

// RequireSessionAuth is the route guard for protected pages. It runs the
// session bootstrap before the wrapped handler: OAuth landing parameters
// are consumed and stripped with a redirect to the clean URL, the stored
// token is validated against the backend, and unauthenticated sessions
// are sent to the login page. Authenticated requests continue with the
// user injected into the request context.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID := s.sessionIDFromRequest(w, r)

			// OAuth redirect landing: store the token, then redirect so
			// the visible URL no longer carries it.
			cleaned, consumed, err := s.boot.ConsumeLandingParams(sessionID, r.URL.Query())
			if err != nil {
				http.Error(w, "Failed to store session", http.StatusInternalServerError)
				return
			}
			if consumed {
				target := r.URL.Path
				if encoded := cleaned.Encode(); encoded != "" {
					target += "?" + encoded
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			result := s.boot.Validate(r.Context(), sessionID)
			if result.State != bootstrap.StateAuthenticated {
				s.metrics.RecordGuardOutcome("unauthenticated")
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}

			s.metrics.RecordGuardOutcome("authenticated")
			ctx := context.WithValue(r.Context(), ContextKeyUser, result.User)
			next(w, r.WithContext(ctx))
		}
	}
}

// UserFromContext returns the authenticated user injected by
// RequireSessionAuth, or nil outside a guarded route.
func UserFromContext(ctx context.Context) *backend.User {
	user, _ := ctx.Value(ContextKeyUser).(*backend.User)
	return user
}
