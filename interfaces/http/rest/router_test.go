package rest

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"soundmap/application/services"
	"soundmap/infrastructure/api"
	"soundmap/infrastructure/persistence/memory"
	"soundmap/infrastructure/session"
	"soundmap/pkg/auth"
	apperrors "soundmap/pkg/errors"
)

const testTimeout = 5 * time.Second

type stack struct {
	server   *httptest.Server
	account  *session.Account
	explorer *services.Explorer
	gateway  *api.SnapshotGateway
	store    *session.Store
}

func newStack(t *testing.T) *stack {
	t.Helper()
	logger := zap.NewNop()

	issuer := auth.NewTokenIssuer("integration-secret", "soundmap-dev")
	router := NewRouter(memory.NewStore(), memory.NewCatalog(), issuer, logger)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	client := session.NewClient(store, server.URL, testTimeout, nil, logger)
	account := session.NewAccount(store, server.URL, client, logger)
	resolver := api.NewResolver(server.URL, testTimeout, logger)
	graphs := api.NewGraphService(server.URL, testTimeout, logger)
	gateway := api.NewSnapshotGateway(server.URL, client, logger)
	explorer := services.NewExplorer(resolver, graphs, resolver, gateway, 2, logger)

	return &stack{
		server:   server,
		account:  account,
		explorer: explorer,
		gateway:  gateway,
		store:    store,
	}
}

func TestSignupLoginExploreSaveRoundTrip(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.account.Signup(ctx, "alice", "hunter2"))
	require.NoError(t, s.account.Login(ctx, "alice", "hunter2"))

	cred, ok := s.store.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", cred.Identity)

	require.NoError(t, s.explorer.Search(ctx, "oasis"))
	st := s.explorer.State()
	assert.Equal(t, "Oasis", st.CenterArtist)
	assert.Equal(t, []string{"Oasis"}, st.Path)
	center, ok := st.Graph.FixedNode()
	require.True(t, ok)
	assert.Equal(t, "Oasis", center.ID)

	// Catalog fixture: Blur is adjacent, Pulp is two hops out
	ids := st.Graph.NodeIDs()
	assert.True(t, ids["Blur"])
	assert.True(t, ids["Pulp"])
	assert.False(t, ids["Muse"])

	require.NotNil(t, st.NowPlaying)
	assert.Equal(t, "Wonderwall", st.NowPlaying.Title)

	created, err := s.explorer.SaveSnapshot(ctx, "britpop night", "")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// Save/list round trip preserves the node-id and edge sets
	listed, err := s.gateway.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, st.Graph.NodeIDs(), listed[0].Graph.NodeIDs())
	assert.ElementsMatch(t, st.Graph.Edges, listed[0].Graph.Edges)
	assert.Equal(t, "britpop night", listed[0].Memo)
	for _, n := range listed[0].Graph.Nodes {
		assert.False(t, n.IsFixed)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.account.Signup(ctx, "alice", "hunter2"))

	err := s.account.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid username or password")

	_, ok := s.store.Current()
	assert.False(t, ok)
}

func TestExpiredAccessTokenIsRefreshedTransparently(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.account.Signup(ctx, "alice", "hunter2"))
	require.NoError(t, s.account.Login(ctx, "alice", "hunter2"))

	// Corrupt the access token; only the refresh path can recover
	cred, ok := s.store.Current()
	require.True(t, ok)
	s.store.SetAccessToken("not-a-token")

	require.NoError(t, s.explorer.Search(ctx, "blur"))

	_, err := s.explorer.SaveSnapshot(ctx, "", "")
	require.NoError(t, err)

	after, ok := s.store.Current()
	require.True(t, ok)
	assert.NotEqual(t, "not-a-token", after.AccessToken)
	assert.Equal(t, cred.RefreshToken, after.RefreshToken)
}

func TestGarbageSessionExpiresOnProtectedCall(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	expired := 0
	logger := zap.NewNop()
	client := session.NewClient(s.store, s.server.URL, testTimeout, func() { expired++ }, logger)
	gateway := api.NewSnapshotGateway(s.server.URL, client, logger)

	s.store.SetCredential("garbage", "garbage", "ghost")

	_, err := gateway.List(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsSessionExpired(err))
	assert.Equal(t, 1, expired)

	_, ok := s.store.Current()
	assert.False(t, ok)
}

func TestUnknownArtistGraphIs404(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	err := s.explorer.Search(ctx, "nobody famous")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "artist not found", s.explorer.State().LastError)
}

func TestUpdateAndDeleteNetwork(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.account.Signup(ctx, "alice", "hunter2"))
	require.NoError(t, s.account.Login(ctx, "alice", "hunter2"))
	require.NoError(t, s.explorer.Search(ctx, "pulp"))

	created, err := s.explorer.SaveSnapshot(ctx, "first", "")
	require.NoError(t, err)

	require.NoError(t, s.gateway.Update(ctx, created.ID, "renamed"))
	listed, err := s.gateway.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "renamed", listed[0].Memo)

	require.NoError(t, s.gateway.Delete(ctx, created.ID))
	assert.True(t, apperrors.IsNotFound(s.gateway.Delete(ctx, created.ID)))

	listed, err = s.gateway.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
