package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_AndCheck(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret-password1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password1", hash)

	assert.True(t, CheckPasswordHash("secret-password1", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateSecureToken(t *testing.T) {
	t.Parallel()

	t1, err := GenerateSecureToken()
	require.NoError(t, err)
	t2, err := GenerateSecureToken()
	require.NoError(t, err)

	assert.Len(t, t1, 64) // 32 байта в hex
	assert.NotEqual(t, t1, t2)
}
