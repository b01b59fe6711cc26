package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"soundmap/domain/graph"
	apperrors "soundmap/pkg/errors"
)

// GraphService fetches relationship graphs from the graph-json endpoint.
// Anonymous; no session involved.
type GraphService struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewGraphService creates a graph fetcher
func NewGraphService(baseURL string, timeout time.Duration, logger *zap.Logger) *GraphService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphService{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchGraph computes the related-artist graph around artist at the given
// expansion depth. An empty node set is a valid, successful result.
func (s *GraphService) FetchGraph(ctx context.Context, artist string, depth int) (graph.Graph, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"artist": artist,
		"level":  depth,
	})
	if err != nil {
		return graph.Graph{}, apperrors.NewInternalError("encoding graph request").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/graph-json/", bytes.NewReader(payload))
	if err != nil {
		return graph.Graph{}, apperrors.NewInternalError("building request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return graph.Graph{}, tagTransportError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return graph.Graph{}, errorFromResponse(res)
	}

	var parsed struct {
		Nodes []graph.Node `json:"nodes"`
		Links []graph.Edge `json:"links"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return graph.Graph{}, apperrors.NewServerError("malformed graph response").WithCause(err)
	}

	g := graph.New(parsed.Nodes, parsed.Links)
	s.logger.Debug("graph fetched",
		zap.String("artist", artist),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return g, nil
}
