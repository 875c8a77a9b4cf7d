package server

import (
	"net/http"
	"net/url"

	"github.com/caredesk/go-admin-portal/backend"
	apperrors "github.com/caredesk/go-admin-portal/internal/errors"
)

// redirectWithError sends the browser back to a page with a user-facing
// error message in the query string.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}

// backendErrorMessage maps a backend call failure to a message the page
// can show. The backend's own detail text wins when it sent one; auth
// failures never reach here (the route guard redirects first).
func backendErrorMessage(err error, fallback string) string {
	var se *backend.StatusError
	if apperrors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return fallback
}

// HealthHandler reports process liveness (GET /healthz)
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
