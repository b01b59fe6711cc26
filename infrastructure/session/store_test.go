package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetAndCurrent(t *testing.T) {
	s := NewStore("")

	_, ok := s.Current()
	assert.False(t, ok)

	s.SetCredential("access-1", "refresh-1", "alice")

	cred, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "access-1", cred.AccessToken)
	assert.Equal(t, "refresh-1", cred.RefreshToken)
	assert.Equal(t, "alice", cred.Identity)
}

func TestSetAccessTokenPreservesIdentityAndRefresh(t *testing.T) {
	s := NewStore("")
	s.SetCredential("access-1", "refresh-1", "alice")

	s.SetAccessToken("access-2")

	cred, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "access-2", cred.AccessToken)
	assert.Equal(t, "refresh-1", cred.RefreshToken)
	assert.Equal(t, "alice", cred.Identity)
}

func TestSetAccessTokenWithoutCredentialIsIgnored(t *testing.T) {
	// An access token must never be observable without its identity
	s := NewStore("")
	s.SetAccessToken("orphan-access")

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestClearReportsPresenceExactlyOnce(t *testing.T) {
	s := NewStore("")
	s.SetCredential("access-1", "refresh-1", "alice")

	assert.True(t, s.Clear())
	assert.False(t, s.Clear())

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSubscribeSeesEveryTransition(t *testing.T) {
	s := NewStore("")

	type event struct {
		identity string
		present  bool
	}
	var events []event
	s.Subscribe(func(cred Credential, present bool) {
		events = append(events, event{cred.Identity, present})
	})

	s.SetCredential("access-1", "refresh-1", "alice")
	s.SetAccessToken("access-2")
	s.Clear()
	s.Clear() // no credential, no notification

	require.Len(t, events, 3)
	assert.Equal(t, event{"alice", true}, events[0])
	assert.Equal(t, event{"alice", true}, events[1])
	assert.Equal(t, event{"", false}, events[2])
}

func TestPersistenceRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sub", "credentials.json")

	s := NewStore(file)
	s.SetCredential("access-1", "refresh-1", "alice")

	// A fresh store picks the credential back up
	restored := NewStore(file)
	cred, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", cred.Identity)
	assert.Equal(t, "access-1", cred.AccessToken)

	restored.Clear()
	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err))

	// And after the clear nothing comes back
	_, ok = NewStore(file).Current()
	assert.False(t, ok)
}
