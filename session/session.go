// Package session holds the per-browser token state for the admin portal.
// The portal keeps no other authoritative state; everything here mirrors
// what the scheduling backend issued at login or refresh time.
package session

// Session is the token state associated with one browser session.
type Session struct {
	AccessToken  string
	RefreshToken string
	Role         string
}

// HasToken reports whether an access token is present.
func (s Session) HasToken() bool {
	return s.AccessToken != ""
}

// Normalized returns the session with the invariant applied that a role is
// meaningless without an access token.
func (s Session) Normalized() Session {
	if s.AccessToken == "" {
		return Session{}
	}
	return s
}

// Update carries the fields of a partial session write. Nil fields are
// left untouched in the stored session, so a refresh can overwrite just
// the access token without dropping the refresh token or role.
type Update struct {
	AccessToken  *string
	RefreshToken *string
	Role         *string
}

func (u Update) apply(s Session) Session {
	if u.AccessToken != nil {
		s.AccessToken = *u.AccessToken
	}
	if u.RefreshToken != nil {
		s.RefreshToken = *u.RefreshToken
	}
	if u.Role != nil {
		s.Role = *u.Role
	}
	return s
}
