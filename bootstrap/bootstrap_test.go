package bootstrap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caredesk/go-admin-portal/backend"
	"github.com/caredesk/go-admin-portal/bootstrap"
	"github.com/caredesk/go-admin-portal/internal/utils"
	"github.com/caredesk/go-admin-portal/session"
	"github.com/stretchr/testify/require"
)

const (
	testSessionID = "sid-1"
	validToken    = "valid-token"
)

type bootstrapFixture struct {
	repo    *session.InMemoryRepo
	boot    *bootstrap.Bootstrapper
	meCalls *atomic.Int32
}

// setupBootstrapFixture wires a bootstrapper against a fake backend that
// accepts validToken and rejects everything else, including refreshes.
func setupBootstrapFixture(t *testing.T, meDelay time.Duration) *bootstrapFixture {
	t.Helper()

	var meCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		time.Sleep(meDelay)

		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name":  "Dr. A",
			"email": "a@x.com",
			"role":  "doctor",
		})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	repo := session.NewInMemoryRepo()
	client := backend.New(srv.URL, repo)

	return &bootstrapFixture{
		repo:    repo,
		boot:    bootstrap.New(repo, client),
		meCalls: &meCalls,
	}
}

func TestConsumeLandingParamsStoresAndStrips(t *testing.T) {
	f := setupBootstrapFixture(t, 0)

	query := url.Values{
		"access_token": {"T"},
		"role":         {"R"},
		"view":         {"week"},
	}

	cleaned, consumed, err := f.boot.ConsumeLandingParams(testSessionID, query)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Empty(t, cleaned.Get("access_token"))
	require.Empty(t, cleaned.Get("role"))
	require.Equal(t, "week", cleaned.Get("view"))

	sess, err := f.repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, "T", sess.AccessToken)
	require.Equal(t, "R", sess.Role)

	// The cleaned URL no longer carries the token, so a reload does not
	// re-store it.
	_, consumed, err = f.boot.ConsumeLandingParams(testSessionID, cleaned)
	require.NoError(t, err)
	require.False(t, consumed)
}

func TestValidateNoTokenSkipsNetwork(t *testing.T) {
	f := setupBootstrapFixture(t, 0)

	result := f.boot.Validate(context.Background(), testSessionID)
	require.Equal(t, bootstrap.StateUnauthenticated, result.State)
	require.Nil(t, result.User)
	require.Equal(t, int32(0), f.meCalls.Load())
}

func TestValidateSuccess(t *testing.T) {
	f := setupBootstrapFixture(t, 0)
	require.NoError(t, f.repo.Set(testSessionID, session.Update{AccessToken: utils.Ptr(validToken)}))

	result := f.boot.Validate(context.Background(), testSessionID)
	require.Equal(t, bootstrap.StateAuthenticated, result.State)
	require.NotNil(t, result.User)
	require.Equal(t, "Dr. A", result.User.Name)
	require.Equal(t, "doctor", result.User.Role)
}

func TestValidateRejectedTokenClearsSession(t *testing.T) {
	f := setupBootstrapFixture(t, 0)
	require.NoError(t, f.repo.Set(testSessionID, session.Update{
		AccessToken:  utils.Ptr("rejected-token"),
		RefreshToken: utils.Ptr("rejected-refresh"),
		Role:         utils.Ptr("doctor"),
	}))

	result := f.boot.Validate(context.Background(), testSessionID)
	require.Equal(t, bootstrap.StateUnauthenticated, result.State)

	sess, err := f.repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, session.Session{}, sess)
}

func TestConcurrentValidatesCoalesce(t *testing.T) {
	f := setupBootstrapFixture(t, 50*time.Millisecond)
	require.NoError(t, f.repo.Set(testSessionID, session.Update{AccessToken: utils.Ptr(validToken)}))

	const starters = 8

	var wg sync.WaitGroup
	results := make([]bootstrap.Result, starters)
	for i := 0; i < starters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.boot.Validate(context.Background(), testSessionID)
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		require.Equal(t, bootstrap.StateAuthenticated, result.State)
	}
	require.Equal(t, int32(1), f.meCalls.Load())
}
