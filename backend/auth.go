package backend

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// User is the authenticated user as reported by the backend's who-am-I
// endpoint. Never persisted; fetched fresh on every session validation.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Me validates the session's access token against the backend and returns
// the authenticated user. A 401 that survives the client's single
// refresh-and-retry surfaces as a StatusError.
func (c *Client) Me(ctx context.Context, sessionID string) (*User, error) {
	var user User
	if err := c.doJSON(ctx, sessionID, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the backend to tear down its side of the session. Best
// effort: callers clear local state whatever this returns.
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	if err := c.doJSON(ctx, sessionID, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		log.Err(err).Msg("Backend logout failed")
		return err
	}
	return nil
}

// LoginURL returns the backend's OAuth entry point. The login page sends
// the browser there with a full-page navigation, never an API call.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/login"
}
