// Package bootstrap determines, once per page lifecycle, whether the
// current browser session is authenticated. It consumes OAuth landing
// parameters, validates the stored token against the backend, and tears
// the session down when validation fails.
package bootstrap

import (
	"context"
	"net/url"

	"github.com/caredesk/go-admin-portal/backend"
	"github.com/caredesk/go-admin-portal/internal/utils"
	"github.com/caredesk/go-admin-portal/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// State is a terminal bootstrap outcome.
type State string

const (
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Query parameter names of the backend's OAuth redirect-back contract.
const (
	accessTokenParam = "access_token"
	roleParam        = "role"
)

// Result is the outcome of one bootstrap run.
type Result struct {
	State State
	User  *backend.User
}

// Bootstrapper runs the session bootstrap sequence. Concurrent runs for
// the same session ID coalesce into a single validation; later starters
// receive the first run's result.
type Bootstrapper struct {
	sessions session.Repo
	client   *backend.Client
	inflight singleflight.Group
}

// New creates a Bootstrapper.
func New(sessions session.Repo, client *backend.Client) *Bootstrapper {
	return &Bootstrapper{
		sessions: sessions,
		client:   client,
	}
}

// ConsumeLandingParams extracts the access_token (and optional role)
// parameters the backend appends when redirecting back after OAuth. When
// present they are stored against the session and stripped from the
// returned query, and the caller must redirect to the cleaned URL so the
// token is never bookmarkable or re-submitted on reload.
func (b *Bootstrapper) ConsumeLandingParams(sessionID string, query url.Values) (cleaned url.Values, consumed bool, err error) {
	accessToken := query.Get(accessTokenParam)
	if accessToken == "" {
		return query, false, nil
	}

	update := session.Update{AccessToken: utils.Ptr(accessToken)}
	if role := query.Get(roleParam); role != "" {
		update.Role = utils.Ptr(role)
	}
	if err := b.sessions.Set(sessionID, update); err != nil {
		return query, false, err
	}

	cleaned = url.Values{}
	for key, values := range query {
		if key == accessTokenParam || key == roleParam {
			continue
		}
		cleaned[key] = values
	}

	log.Debug().Msg("Consumed OAuth landing parameters")
	return cleaned, true, nil
}

// Validate checks the stored token against the backend's who-am-I
// endpoint. No stored token means unauthenticated without any network
// call. Validation failure clears the whole session. Runs for the same
// session ID are coalesced, so a handler re-invoking bootstrap while one
// is already in flight performs no duplicate network work.
func (b *Bootstrapper) Validate(ctx context.Context, sessionID string) Result {
	result, _, _ := b.inflight.Do(sessionID, func() (interface{}, error) {
		return b.validate(ctx, sessionID), nil
	})
	return result.(Result)
}

func (b *Bootstrapper) validate(ctx context.Context, sessionID string) Result {
	sess, err := b.sessions.Get(sessionID)
	if err != nil || !sess.HasToken() {
		return Result{State: StateUnauthenticated}
	}

	user, err := b.client.Me(ctx, sessionID)
	if err != nil {
		log.Debug().Err(err).Msg("Session validation failed")
		if clearErr := b.sessions.Clear(sessionID); clearErr != nil {
			log.Err(clearErr).Msg("Failed to clear session after validation failure")
		}
		return Result{State: StateUnauthenticated}
	}

	return Result{State: StateAuthenticated, User: user}
}
