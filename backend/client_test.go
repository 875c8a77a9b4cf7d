package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/caredesk/go-admin-portal/backend"
	apperrors "github.com/caredesk/go-admin-portal/internal/errors"
	"github.com/caredesk/go-admin-portal/internal/utils"
	"github.com/caredesk/go-admin-portal/session"
	"github.com/stretchr/testify/require"
)

const (
	testSessionID    = "sid-1"
	validToken       = "valid-token"
	staleToken       = "stale-token"
	refreshedToken   = "refreshed-token"
	testRefreshToken = "refresh-token-1"
)

// fakeBackend is a scripted scheduling backend. It accepts validToken and
// refreshedToken as bearer credentials and counts refresh calls.
type fakeBackend struct {
	refreshCalls   atomic.Int32
	refreshSucceed bool
	meCalls        atomic.Int32
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken != testRefreshToken {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if !f.refreshSucceed {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": refreshedToken})
	})

	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls.Add(1)

		switch r.Header.Get("Authorization") {
		case "Bearer " + validToken, "Bearer " + refreshedToken:
			_ = json.NewEncoder(w).Encode(map[string]string{
				"name":  "Dr. A",
				"email": "a@x.com",
				"role":  "doctor",
			})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})

	mux.HandleFunc("GET /doctors/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "database down"})
	})

	return mux
}

type clientFixture struct {
	backend *fakeBackend
	server  *httptest.Server
	repo    *session.InMemoryRepo
	client  *backend.Client
}

func setupClientFixture(t *testing.T, refreshSucceed bool) *clientFixture {
	t.Helper()

	fb := &fakeBackend{refreshSucceed: refreshSucceed}
	srv := httptest.NewServer(fb.handler())
	t.Cleanup(srv.Close)

	repo := session.NewInMemoryRepo()
	client := backend.New(srv.URL, repo)

	return &clientFixture{backend: fb, server: srv, repo: repo, client: client}
}

func (f *clientFixture) storeSession(t *testing.T, accessToken string) {
	t.Helper()

	err := f.repo.Set(testSessionID, session.Update{
		AccessToken:  utils.Ptr(accessToken),
		RefreshToken: utils.Ptr(testRefreshToken),
		Role:         utils.Ptr("doctor"),
	})
	require.NoError(t, err)
}

func TestValidTokenNeverTriggersRefresh(t *testing.T) {
	f := setupClientFixture(t, true)
	f.storeSession(t, validToken)

	user, err := f.client.Me(context.Background(), testSessionID)
	require.NoError(t, err)
	require.Equal(t, "Dr. A", user.Name)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, "doctor", user.Role)

	require.Equal(t, int32(0), f.backend.refreshCalls.Load())
}

func TestStaleTokenRefreshedAndRetriedOnce(t *testing.T) {
	f := setupClientFixture(t, true)
	f.storeSession(t, staleToken)

	user, err := f.client.Me(context.Background(), testSessionID)
	require.NoError(t, err)
	require.Equal(t, "doctor", user.Role)

	require.Equal(t, int32(1), f.backend.refreshCalls.Load())
	require.Equal(t, int32(2), f.backend.meCalls.Load())

	// The refreshed token replaced the stale one; the refresh token stays.
	sess, err := f.repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, refreshedToken, sess.AccessToken)
	require.Equal(t, testRefreshToken, sess.RefreshToken)
}

func TestRefreshFailureClearsSessionAndPropagates(t *testing.T) {
	f := setupClientFixture(t, false)
	f.storeSession(t, staleToken)

	_, err := f.client.Me(context.Background(), testSessionID)
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	require.Equal(t, int32(1), f.backend.refreshCalls.Load())
	require.Equal(t, int32(1), f.backend.meCalls.Load())

	sess, err := f.repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, session.Session{}, sess)
}

func TestSecond401AfterRetryPropagatesWithoutAnotherRefresh(t *testing.T) {
	// Refresh succeeds but hands out a token the backend still rejects.
	var refreshCalls, meCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "still-stale"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	repo := session.NewInMemoryRepo()
	require.NoError(t, repo.Set(testSessionID, session.Update{
		AccessToken:  utils.Ptr(staleToken),
		RefreshToken: utils.Ptr(testRefreshToken),
	}))
	client := backend.New(srv.URL, repo)

	_, err := client.Me(context.Background(), testSessionID)
	require.Error(t, err)
	require.True(t, backend.IsStatus(err, http.StatusUnauthorized))

	require.Equal(t, int32(1), refreshCalls.Load())
	require.Equal(t, int32(2), meCalls.Load())
}

func TestNonAuthErrorsPassThrough(t *testing.T) {
	f := setupClientFixture(t, true)
	f.storeSession(t, validToken)

	_, err := f.client.ListDoctors(context.Background(), testSessionID)
	require.Error(t, err)
	require.True(t, backend.IsStatus(err, http.StatusInternalServerError))

	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "database down", se.Detail)
	require.Equal(t, int32(0), f.backend.refreshCalls.Load())
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	var sawAuth atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			sawAuth.Store(true)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := backend.New(srv.URL, session.NewInMemoryRepo())

	_, err := client.Me(context.Background(), "no-such-session")
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	require.False(t, sawAuth.Load())
}

func TestLogoutReportsBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := backend.New(srv.URL, session.NewInMemoryRepo())

	err := client.Logout(context.Background(), testSessionID)
	require.Error(t, err)
	require.True(t, backend.IsStatus(err, http.StatusInternalServerError))
}
