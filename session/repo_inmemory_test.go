package session_test

import (
	"testing"

	"github.com/caredesk/go-admin-portal/internal/utils"
	"github.com/caredesk/go-admin-portal/session"
	"github.com/stretchr/testify/require"
)

const testSessionID = "sid-1"

func TestGetUnknownSessionReturnsZeroSession(t *testing.T) {
	repo := session.NewInMemoryRepo()

	s, err := repo.Get("never-seen")
	require.NoError(t, err)
	require.Equal(t, session.Session{}, s)
}

func TestSetMergesWithoutClearingOmittedFields(t *testing.T) {
	repo := session.NewInMemoryRepo()

	err := repo.Set(testSessionID, session.Update{
		AccessToken:  utils.Ptr("token-1"),
		RefreshToken: utils.Ptr("refresh-1"),
		Role:         utils.Ptr("doctor"),
	})
	require.NoError(t, err)

	// Overwrite just the access token, as a refresh does.
	err = repo.Set(testSessionID, session.Update{AccessToken: utils.Ptr("token-2")})
	require.NoError(t, err)

	s, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, "token-2", s.AccessToken)
	require.Equal(t, "refresh-1", s.RefreshToken)
	require.Equal(t, "doctor", s.Role)
}

func TestRoleIsAbsentWithoutAccessToken(t *testing.T) {
	repo := session.NewInMemoryRepo()

	err := repo.Set(testSessionID, session.Update{Role: utils.Ptr("admin")})
	require.NoError(t, err)

	s, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.False(t, s.HasToken())
	require.Empty(t, s.Role)
}

func TestClearRemovesAllFields(t *testing.T) {
	repo := session.NewInMemoryRepo()

	err := repo.Set(testSessionID, session.Update{
		AccessToken:  utils.Ptr("token-1"),
		RefreshToken: utils.Ptr("refresh-1"),
		Role:         utils.Ptr("admin"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Clear(testSessionID))

	s, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, session.Session{}, s)
}

func TestSetRequiresSessionID(t *testing.T) {
	repo := session.NewInMemoryRepo()

	err := repo.Set("", session.Update{AccessToken: utils.Ptr("token-1")})
	require.Error(t, err)
}
