// Package token inspects access tokens issued by the scheduling backend.
//
// The portal never verifies token signatures; only the backend can do
// that. Inspection here is limited to the cheap, local-only reads the
// login screen needs (is a token plausibly still live) before deciding
// whether to skip the OAuth round trip.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// LooksLive reports whether rawToken parses as a JWT whose exp claim has
// not passed. Unparseable tokens and tokens without an exp claim report
// false; the caller falls back to a full server-side validation.
func LooksLive(rawToken string) bool {
	if strings.TrimSpace(rawToken) == "" {
		return false
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return false
	}

	claims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.After(NowTimeFunc())
}
