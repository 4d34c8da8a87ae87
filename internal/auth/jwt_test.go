package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager() *JWTManager {
	return NewJWTManager("test-secret-key", 24*time.Hour)
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := newTestJWTManager()
	userID := uuid.New()

	token, err := mgr.GenerateToken(userID, "Danny", false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "Danny", claims.DisplayName)
	assert.False(t, claims.Guest)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGuestToken(t *testing.T) {
	mgr := newTestJWTManager()

	token, err := mgr.GenerateToken(uuid.New(), "Ringer", true)
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Guest)
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := NewJWTManager("test-secret-key", -time.Hour)

	token, err := mgr.GenerateToken(uuid.New(), "Danny", false)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := newTestJWTManager().GenerateToken(uuid.New(), "Danny", false)
	require.NoError(t, err)

	other := NewJWTManager("a-different-secret", 24*time.Hour)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := newTestJWTManager().ValidateToken("not.a.token")
	assert.Error(t, err)
}
