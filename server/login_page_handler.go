package server

import (
	"net/http"

	"github.com/caredesk/go-admin-portal/token"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	LoginURL string
	Error    string
}

// LoginPageHandler displays the login page (GET /login). An already
// authenticated browser is sent straight to the dashboard; the check is
// local only (token present and not past its exp claim), no backend call.
// The login action itself is a full-page navigation to the backend's
// OAuth entry point.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sess, err := s.deps.Sessions.Get(cookie.Value)
			if err == nil && sess.HasToken() && token.LooksLive(sess.AccessToken) {
				http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
				return
			}
		}

		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			LoginURL: s.deps.Backend.LoginURL(),
			Error:    r.URL.Query().Get("error"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}
