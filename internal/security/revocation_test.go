package security

import (
	"testing"
	"time"

	"agrirent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationList(t *testing.T) {
	l := NewRevocationList()

	l.Revoke("jti-1", time.Now().Add(time.Hour))
	assert.True(t, l.IsRevoked("jti-1"))
	assert.False(t, l.IsRevoked("jti-2"))
	assert.False(t, l.IsRevoked(""))

	l.Revoke("jti-old", time.Now().Add(-time.Minute))
	assert.False(t, l.IsRevoked("jti-old"))
}

func TestRevocationList_ExpiresWithToken(t *testing.T) {
	l := NewRevocationList()
	l.Revoke("jti-short", time.Now().Add(20*time.Millisecond))
	require.True(t, l.IsRevoked("jti-short"))

	assert.Eventually(t, func() bool { return !l.IsRevoked("jti-short") }, time.Second, 10*time.Millisecond)
}

func TestRevocationList_CheckIssuedToken(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	token, expires, err := tm.IssueSession("user-1", "farmer@test.com", domain.RoleFarmer)
	require.NoError(t, err)
	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	l := NewRevocationList()
	assert.NoError(t, l.Check(claims))
	l.Revoke(claims.ID, expires)
	assert.ErrorIs(t, l.Check(claims), ErrRevokedToken)
}
