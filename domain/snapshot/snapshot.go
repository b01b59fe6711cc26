package snapshot

import (
	"time"

	"soundmap/domain/graph"
)

// Snapshot is a persisted copy of an exploration session. The backend owns
// it; the client only holds ephemeral copies for display and editing.
// Field names follow the save-network wire format.
type Snapshot struct {
	ID           int64       `json:"id,omitempty"`
	CenterArtist string      `json:"center_artist"`
	Graph        graph.Graph `json:"graph_json"`
	Memo         string      `json:"memo"`
	Path         []string    `json:"path,omitempty"`
	Thumbnail    string      `json:"image_base64,omitempty"`
	CreatedAt    time.Time   `json:"created_at,omitempty"`
}

// Clean returns a copy of g with transient layout state stripped, ready to
// persist. Positions and velocities never leave the rendering widget, so
// the only layout trace the domain graph carries is the pin override;
// distance groups and derived colors are kept.
func Clean(g graph.Graph) graph.Graph {
	c := g.Clone()
	for i := range c.Nodes {
		c.Nodes[i].IsFixed = false
	}
	return c
}
