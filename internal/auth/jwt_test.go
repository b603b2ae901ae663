package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManager_EmptySecrets(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("", "refresh", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("access", "", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestGeneratePair_AndParse(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)
	userID := uuid.New()
	roles := []string{RoleStudent, RoleMentor}

	pair, err := tm.GeneratePair(userID, "user@test.com", roles)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	accessClaims, err := tm.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), accessClaims.Subject)
	assert.Equal(t, "user@test.com", accessClaims.Email)
	assert.Equal(t, roles, accessClaims.Roles)

	refreshClaims, err := tm.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), refreshClaims.Subject)
}

// Токены подписаны разными секретами и не взаимозаменяемы
func TestParse_CrossTokenRejected(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)
	pair, err := tm.GeneratePair(uuid.New(), "user@test.com", nil)
	require.NoError(t, err)

	_, err = tm.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tm.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccess_Expired(t *testing.T) {
	t.Parallel()

	tm, err := NewTokenManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := tm.GeneratePair(uuid.New(), "user@test.com", nil)
	require.NoError(t, err)

	_, err = tm.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccess_Garbage(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)
	_, err := tm.ParseAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHashRefreshToken(t *testing.T) {
	t.Parallel()

	h1 := HashRefreshToken("token-a")
	h2 := HashRefreshToken("token-a")
	h3 := HashRefreshToken("token-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // hex от sha256
}
