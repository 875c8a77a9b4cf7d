package server

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	// sessionCookieName identifies the browser session holding the tokens
	sessionCookieName = "portal_session_id"
)

// sessionIDFromRequest returns the browser's session ID, minting and
// setting a new one when the cookie is missing. Tokens arriving on the
// OAuth landing URL need a session to be stored against before the user
// is known.
func (s *Server) sessionIDFromRequest(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.NewString()
	s.SetSessionCookie(w, r, sessionID)
	return sessionID
}

// sessionID returns the browser's session ID without minting one.
func (s *Server) sessionID(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetSessionTTL().Seconds()),
	})
}

func (s *Server) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
