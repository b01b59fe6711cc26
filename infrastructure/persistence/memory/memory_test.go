package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundmap/domain/graph"
	"soundmap/domain/snapshot"
	apperrors "soundmap/pkg/errors"
)

func TestUserLifecycle(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.CreateUser("alice", "hunter2"))
	err := s.CreateUser("alice", "other")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	assert.True(t, s.Authenticate("alice", "hunter2"))
	assert.False(t, s.Authenticate("alice", "wrong"))
	assert.False(t, s.Authenticate("bob", "hunter2"))
	assert.True(t, s.HasUser("alice"))
	assert.False(t, s.HasUser("bob"))
}

func TestSaveListNewestFirst(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.CreateUser("alice", "pw"))

	for _, artist := range []string{"Oasis", "Blur", "Pulp"} {
		_, err := s.SaveNetwork("alice", snapshot.Snapshot{CenterArtist: artist})
		require.NoError(t, err)
	}

	rows, err := s.ListNetworks("alice")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Pulp", rows[0].CenterArtist)
	assert.Equal(t, "Oasis", rows[2].CenterArtist)
	assert.Greater(t, rows[0].ID, rows[1].ID)
}

func TestSaveStripsPinAndIsolatesUsers(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.CreateUser("alice", "pw"))
	require.NoError(t, s.CreateUser("bob", "pw"))

	g := graph.New([]graph.Node{{ID: "Oasis", IsFixed: true}}, nil)
	stored, err := s.SaveNetwork("alice", snapshot.Snapshot{CenterArtist: "Oasis", Graph: g})
	require.NoError(t, err)
	require.Len(t, stored.Graph.Nodes, 1)
	assert.False(t, stored.Graph.Nodes[0].IsFixed)
	assert.False(t, stored.CreatedAt.IsZero())

	bobRows, err := s.ListNetworks("bob")
	require.NoError(t, err)
	assert.Empty(t, bobRows)
}

func TestUpdateMemoAndDelete(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.CreateUser("alice", "pw"))
	stored, err := s.SaveNetwork("alice", snapshot.Snapshot{CenterArtist: "Oasis"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateMemo("alice", stored.ID, "britpop"))
	rows, err := s.ListNetworks("alice")
	require.NoError(t, err)
	assert.Equal(t, "britpop", rows[0].Memo)

	assert.True(t, apperrors.IsNotFound(s.UpdateMemo("alice", 999, "x")))

	require.NoError(t, s.DeleteNetwork("alice", stored.ID))
	assert.True(t, apperrors.IsNotFound(s.DeleteNetwork("alice", stored.ID)))
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()

	hits := c.Search("oasis")
	require.NotEmpty(t, hits)
	assert.Equal(t, "Oasis", hits[0].Name)

	// Substring match anywhere in the name
	hits = c.Search("the")
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Contains(t, strings.ToLower(h.Name), "the")
	}

	assert.Empty(t, c.Search("zzz"))
	assert.Empty(t, c.Search("  "))
}

func TestCatalogTopTrack(t *testing.T) {
	c := NewCatalog()

	oasis, ok := c.Lookup("oasis")
	require.True(t, ok)
	track, err := c.TopTrack(oasis.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wonderwall", track.Title)

	_, err = c.TopTrack(99999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBuildGraphHopDistances(t *testing.T) {
	c := NewCatalog()

	g, err := c.BuildGraph("Oasis", 2)
	require.NoError(t, err)

	byID := make(map[string]graph.Node)
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	require.Contains(t, byID, "Oasis")
	assert.Equal(t, 0, byID["Oasis"].DistanceGroup)
	assert.Equal(t, 1, byID["Blur"].DistanceGroup)
	assert.Equal(t, 1, byID["The Verve"].DistanceGroup)
	assert.Equal(t, 2, byID["Pulp"].DistanceGroup)
	assert.Equal(t, 2, byID["Radiohead"].DistanceGroup)

	// Three hops away, must not appear at level 2
	assert.NotContains(t, byID, "Muse")

	// graph.New already validated edges; both endpoints must be present
	for _, e := range g.Edges {
		assert.Contains(t, byID, e.SourceID)
		assert.Contains(t, byID, e.TargetID)
	}
}

func TestBuildGraphUnknownArtist(t *testing.T) {
	c := NewCatalog()
	_, err := c.BuildGraph("Nobody", 2)
	assert.True(t, apperrors.IsNotFound(err))
}
