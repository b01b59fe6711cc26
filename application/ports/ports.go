// Package ports defines the interfaces the application layer depends on,
// implemented by the infrastructure layer and faked in tests.
package ports

import (
	"context"

	"soundmap/domain/exploration"
	"soundmap/domain/graph"
	"soundmap/domain/snapshot"
)

// Artist is a canonical catalog entry returned by name resolution
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Resolver resolves a raw user query to its canonical artist entry.
// Returns a NotFound error when the catalog has no match.
type Resolver interface {
	Resolve(ctx context.Context, query string) (Artist, error)
}

// GraphFetcher computes the relationship graph around an artist at the
// given expansion depth
type GraphFetcher interface {
	FetchGraph(ctx context.Context, artist string, depth int) (graph.Graph, error)
}

// PreviewFetcher looks up an artist's top track for playback preview
type PreviewFetcher interface {
	TopTrack(ctx context.Context, artist string) (exploration.Track, error)
}

// SnapshotGateway is the request/response mapping for persisted
// exploration snapshots. List preserves server order; Delete reports
// NotFound for an already-deleted id rather than a generic failure.
type SnapshotGateway interface {
	List(ctx context.Context) ([]snapshot.Snapshot, error)
	Create(ctx context.Context, s snapshot.Snapshot) (snapshot.Snapshot, error)
	Update(ctx context.Context, id int64, memo string) error
	Delete(ctx context.Context, id int64) error
}
