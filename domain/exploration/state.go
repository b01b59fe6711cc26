package exploration

import "soundmap/domain/graph"

// Phase is the exploration state machine phase.
// Loaded and Error are stable and interactive; Idle and Searching are
// transient.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhaseLoaded    Phase = "loaded"
	PhaseError     Phase = "error"
)

// Track is the center artist's top track, shown while exploring
type Track struct {
	Title      string
	PreviewURL string
	CoverURL   string
}

// State is everything the exploration view renders. CenterArtist, Path and
// Graph only ever change together, on a successful re-center; on errors the
// previous graph stays visible.
type State struct {
	Phase        Phase
	CenterArtist string
	Path         []string
	Graph        graph.Graph
	Loading      bool
	LastError    string
	ShowAllLinks bool
	NowPlaying   *Track
	JustSaved    bool
}

// NewState returns the empty initial state
func NewState() State {
	return State{Phase: PhaseIdle}
}

// Clone returns a deep copy safe to hand to renderers
func (s State) Clone() State {
	c := s
	c.Path = append([]string(nil), s.Path...)
	c.Graph = s.Graph.Clone()
	if s.NowPlaying != nil {
		track := *s.NowPlaying
		c.NowPlaying = &track
	}
	return c
}

// AppendPath adds name to the exploration path. With suppressAdjacent set,
// a name equal to the path's current last entry is not appended again:
// re-searching the same artist does not grow the path, while re-clicking
// the center node does.
func AppendPath(path []string, name string, suppressAdjacent bool) []string {
	if suppressAdjacent && len(path) > 0 && path[len(path)-1] == name {
		return path
	}
	return append(path, name)
}
