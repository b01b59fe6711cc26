package services

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"soundmap/application/ports"
	"soundmap/domain/exploration"
	"soundmap/domain/snapshot"
	apperrors "soundmap/pkg/errors"
)

// Explorer is the exploration state machine. It owns the center artist,
// the re-center path, and the current graph, and turns user actions into
// fetches plus consistent state transitions.
//
// State mutation is serialized behind a mutex even though fetches run
// concurrently at the network layer. Every action gets a monotonically
// increasing sequence number; the result of any action that is no longer
// the latest issued is discarded, so a slow earlier search can never
// clobber a faster later one.
type Explorer struct {
	mu    sync.Mutex
	state exploration.State
	seq   uint64

	resolver  ports.Resolver
	graphs    ports.GraphFetcher
	previews  ports.PreviewFetcher
	snapshots ports.SnapshotGateway
	depth     int
	logger    *zap.Logger

	onChange func(exploration.State)
}

// NewExplorer creates an exploration controller. previews may be nil to
// skip top-track lookups; depth is the fixed graph expansion depth.
func NewExplorer(
	resolver ports.Resolver,
	graphs ports.GraphFetcher,
	previews ports.PreviewFetcher,
	snapshots ports.SnapshotGateway,
	depth int,
	logger *zap.Logger,
) *Explorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explorer{
		state:     exploration.NewState(),
		resolver:  resolver,
		graphs:    graphs,
		previews:  previews,
		snapshots: snapshots,
		depth:     depth,
		logger:    logger,
	}
}

// OnChange registers a listener invoked with a state copy after every
// committed transition
func (e *Explorer) OnChange(fn func(exploration.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// State returns a copy of the current state, safe to render from
func (e *Explorer) State() exploration.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Search resolves a raw query to its canonical artist name and re-centers
// the graph on it. Empty or whitespace input is rejected locally, before
// any network call. Re-searching the artist already at the end of the
// path does not grow the path.
func (e *Explorer) Search(ctx context.Context, rawQuery string) error {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return apperrors.NewValidationError("artist name is required")
	}

	seq := e.beginAction()

	artist, err := e.resolver.Resolve(ctx, query)
	if err != nil {
		e.failAction(seq, err)
		return err
	}

	return e.recenter(ctx, seq, artist.Name, true)
}

// SelectNode re-centers on a clicked node. The id is already canonical,
// so there is no resolution step, and the path always grows: re-clicking
// the current center is a valid re-centering step.
func (e *Explorer) SelectNode(ctx context.Context, nodeID string) error {
	if strings.TrimSpace(nodeID) == "" {
		return apperrors.NewValidationError("node id is required")
	}

	seq := e.beginAction()
	return e.recenter(ctx, seq, nodeID, false)
}

// ToggleAllLinksVisible flips the show-all-links flag and returns the new
// value. Pure UI state, no fetch.
func (e *Explorer) ToggleAllLinksVisible() bool {
	e.mu.Lock()
	e.state.ShowAllLinks = !e.state.ShowAllLinks
	value := e.state.ShowAllLinks
	st := e.state.Clone()
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(st)
	}
	return value
}

// SaveSnapshot persists the current exploration under the user's account.
// Transient layout state is stripped before the snapshot leaves the
// client. The exploration state is untouched beyond the JustSaved flag.
func (e *Explorer) SaveSnapshot(ctx context.Context, memo, thumbnail string) (snapshot.Snapshot, error) {
	e.mu.Lock()
	st := e.state.Clone()
	e.mu.Unlock()

	if st.Graph.IsEmpty() {
		return snapshot.Snapshot{}, apperrors.NewValidationError("nothing to save yet")
	}

	created, err := e.snapshots.Create(ctx, snapshot.Snapshot{
		CenterArtist: st.CenterArtist,
		Graph:        snapshot.Clean(st.Graph),
		Memo:         memo,
		Thumbnail:    thumbnail,
		Path:         st.Path,
	})
	if err != nil {
		if apperrors.IsSessionExpired(err) {
			e.logger.Warn("snapshot save rejected, session expired")
			return snapshot.Snapshot{}, err
		}
		return snapshot.Snapshot{}, apperrors.Wrap(err, "saving snapshot")
	}

	e.mu.Lock()
	e.state.JustSaved = true
	stCopy := e.state.Clone()
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(stCopy)
	}
	e.logger.Info("snapshot saved", zap.Int64("id", created.ID))
	return created, nil
}

// beginAction issues a new sequence number and moves into Searching.
// Any previously in-flight action becomes stale from this point on.
func (e *Explorer) beginAction() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	e.state.Phase = exploration.PhaseSearching
	e.state.Loading = true
	e.state.JustSaved = false
	return e.seq
}

// recenter runs the fetch half of an action and commits the result
func (e *Explorer) recenter(ctx context.Context, seq uint64, canonical string, suppressAdjacent bool) error {
	g, err := e.graphs.FetchGraph(ctx, canonical, e.depth)
	if err != nil {
		e.failAction(seq, err)
		return err
	}

	// Preview lookup is enrichment; failures are ignored
	var track *exploration.Track
	if e.previews != nil {
		if top, err := e.previews.TopTrack(ctx, canonical); err == nil {
			track = &top
		}
	}

	e.mu.Lock()
	if seq != e.seq {
		e.mu.Unlock()
		e.logger.Debug("stale re-center discarded", zap.String("artist", canonical))
		return nil
	}

	g.Recenter(canonical)
	e.state.CenterArtist = canonical
	e.state.Path = exploration.AppendPath(e.state.Path, canonical, suppressAdjacent)
	e.state.Graph = g
	e.state.NowPlaying = track
	e.state.Phase = exploration.PhaseLoaded
	e.state.Loading = false
	e.state.LastError = ""
	st := e.state.Clone()
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(st)
	}
	e.logger.Info("re-centered",
		zap.String("artist", canonical),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("pathLen", len(st.Path)),
	)
	return nil
}

// failAction commits an error transition, keeping the previous graph
// visible. Stale failures are discarded like stale successes.
func (e *Explorer) failAction(seq uint64, err error) {
	e.mu.Lock()
	if seq != e.seq {
		e.mu.Unlock()
		return
	}
	e.state.Phase = exploration.PhaseError
	e.state.Loading = false
	e.state.LastError = userMessage(err)
	st := e.state.Clone()
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

// userMessage turns a tagged error into the message the view shows
func userMessage(err error) string {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		return "something went wrong"
	}
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		return "artist not found"
	case apperrors.ErrorTypeSessionExpired:
		return "session expired, please log in again"
	case apperrors.ErrorTypeTimeout:
		return "the request timed out"
	case apperrors.ErrorTypeNetwork:
		return "could not reach the server"
	default:
		return appErr.Message
	}
}
