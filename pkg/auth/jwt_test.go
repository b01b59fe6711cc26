package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuePairAndDecodeIdentity(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "soundmap-dev")

	access, refresh, err := issuer.IssuePair("alice")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	// Identity comes out of the token itself, no extra endpoint
	identity, err := DecodeIdentity(access)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", "soundmap-dev")
	other := NewTokenIssuer("secret-b", "soundmap-dev")

	access, _, err := issuer.IssuePair("alice")
	require.NoError(t, err)

	_, err = other.ValidateAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsRefreshAsAccess(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "soundmap-dev")

	_, refresh, err := issuer.IssuePair("alice")
	require.NoError(t, err)

	_, err = issuer.ValidateAccess(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	claims, err := issuer.ValidateRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestDecodeIdentityGarbage(t *testing.T) {
	_, err := DecodeIdentity("not-a-token")
	assert.Error(t, err)
}

func TestUserContextRoundTrip(t *testing.T) {
	ctx := ContextWithUser(context.Background(), "alice")
	username, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", username)

	_, ok = UserFromContext(context.Background())
	assert.False(t, ok)
}
