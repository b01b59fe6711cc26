package exploration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soundmap/domain/graph"
)

func TestAppendPathSuppressesAdjacentDuplicates(t *testing.T) {
	path := AppendPath(nil, "Oasis", true)
	path = AppendPath(path, "Oasis", true)
	assert.Equal(t, []string{"Oasis"}, path)

	// Non-adjacent repeats are kept
	path = AppendPath(path, "Blur", true)
	path = AppendPath(path, "Oasis", true)
	assert.Equal(t, []string{"Oasis", "Blur", "Oasis"}, path)
}

func TestAppendPathUnconditional(t *testing.T) {
	// Node clicks append even when re-clicking the current center
	path := []string{"Oasis"}
	path = AppendPath(path, "Oasis", false)
	assert.Equal(t, []string{"Oasis", "Oasis"}, path)
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.Path = []string{"Oasis"}
	s.Graph = graph.New([]graph.Node{{ID: "Oasis"}}, nil)
	s.NowPlaying = &Track{Title: "Live Forever"}

	c := s.Clone()
	c.Path[0] = "Blur"
	c.Graph.Nodes[0].ID = "Blur"
	c.NowPlaying.Title = "Song 2"

	assert.Equal(t, "Oasis", s.Path[0])
	assert.Equal(t, "Oasis", s.Graph.Nodes[0].ID)
	assert.Equal(t, "Live Forever", s.NowPlaying.Title)
}
