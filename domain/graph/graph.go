package graph

// Node is an artist in a relationship graph. The id is the artist name,
// unique within one graph. DistanceGroup is the hop count from the center
// and drives the node's color; the center is group 0 and the only node
// pinned at the origin.
type Node struct {
	ID            string `json:"id"`
	DistanceGroup int    `json:"group"`
	IsFixed       bool   `json:"isFixed,omitempty"`
	Color         string `json:"color,omitempty"`
}

// Edge connects two nodes by id within the same graph
type Edge struct {
	SourceID string `json:"source"`
	TargetID string `json:"target"`
}

// Graph is a set of nodes unique by id plus the edges between them.
// The JSON shape matches the graph-json wire format (nodes/links).
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"links"`
}

// Palette maps distance groups to node colors. Groups beyond the palette
// fall back to FallbackColor.
var Palette = []string{
	"#c44569", // center
	"#8e44ad",
	"#3498db",
	"#1abc9c",
}

// FallbackColor is used for any distance group past the palette's range
const FallbackColor = "#a3a3a3"

// ColorFor returns the palette color for a distance group
func ColorFor(group int) string {
	if group >= 0 && group < len(Palette) {
		return Palette[group]
	}
	return FallbackColor
}

// New builds a graph from raw nodes and edges as they come off the wire:
// duplicate node ids are dropped (first occurrence wins) and so is any
// edge with an endpoint that references no node.
func New(nodes []Node, edges []Edge) Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(edges)),
	}

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		g.Nodes = append(g.Nodes, n)
	}

	for _, e := range edges {
		if !seen[e.SourceID] || !seen[e.TargetID] {
			continue
		}
		g.Edges = append(g.Edges, e)
	}

	return g
}

// Recenter marks exactly the node with centerID as the fixed group-0
// origin, unmarks every other node, and recomputes all colors from the
// distance groups.
func (g *Graph) Recenter(centerID string) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == centerID {
			g.Nodes[i].IsFixed = true
			g.Nodes[i].DistanceGroup = 0
		} else {
			g.Nodes[i].IsFixed = false
		}
		g.Nodes[i].Color = ColorFor(g.Nodes[i].DistanceGroup)
	}
}

// IsEmpty reports whether the graph has no nodes
func (g Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// FixedNode returns the pinned center node, if any
func (g Graph) FixedNode() (Node, bool) {
	for _, n := range g.Nodes {
		if n.IsFixed {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns the set of node ids in the graph
func (g Graph) NodeIDs() map[string]bool {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	return ids
}

// Clone returns a deep copy of the graph
func (g Graph) Clone() Graph {
	c := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(c.Nodes, g.Nodes)
	copy(c.Edges, g.Edges)
	return c
}
