package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// DashboardPageData contains data for rendering the dashboard page
type DashboardPageData struct {
	AppName string
	Name    string
	Email   string
	Role    string
}

// DashboardHandler renders the authenticated landing page. This is also
// the path the backend redirects to after OAuth; the route guard consumes
// the token parameters before this handler ever runs.
func (s *Server) DashboardHandler() http.HandlerFunc {
	dashboardTmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse dashboard template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := DashboardPageData{
			AppName: s.config.GetAppName(),
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := dashboardTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render dashboard template")
			http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		}
	}
}
