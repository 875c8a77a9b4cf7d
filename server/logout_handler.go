package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// LogoutHandler ends the browser session. The backend teardown is best
// effort; local session state is always cleared whatever it returns.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionID := cookie.Value

			if err := s.deps.Backend.Logout(r.Context(), sessionID); err != nil {
				log.Debug().Err(err).Msg("Backend logout failed, clearing local session anyway")
			}
			if err := s.deps.Sessions.Clear(sessionID); err != nil {
				log.Err(err).Msg("Failed to clear session on logout")
			}
		}

		s.ClearSessionCookie(w, r)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
