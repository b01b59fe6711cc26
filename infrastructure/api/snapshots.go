package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"soundmap/domain/snapshot"
	"soundmap/infrastructure/session"
	apperrors "soundmap/pkg/errors"
)

// SnapshotGateway maps snapshot CRUD onto the save-network endpoints. All
// calls go through the authenticated session client, so an expired session
// surfaces as SessionExpired rather than a raw 401.
type SnapshotGateway struct {
	baseURL string
	client  *session.Client
	logger  *zap.Logger
}

// NewSnapshotGateway creates a snapshot gateway
func NewSnapshotGateway(baseURL string, client *session.Client, logger *zap.Logger) *SnapshotGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotGateway{baseURL: baseURL, client: client, logger: logger}
}

// List returns the caller's snapshots in the order the server sent them;
// the client must not re-sort.
func (g *SnapshotGateway) List(ctx context.Context) ([]snapshot.Snapshot, error) {
	res, err := g.client.Do(ctx, http.MethodGet, g.baseURL+"/api/my-networks/", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errorFromResponse(res)
	}

	var items []snapshot.Snapshot
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, apperrors.NewServerError("malformed snapshot list").WithCause(err)
	}
	return items, nil
}

// Create persists a snapshot and returns it with the server-assigned id
func (g *SnapshotGateway) Create(ctx context.Context, s snapshot.Snapshot) (snapshot.Snapshot, error) {
	payload := map[string]interface{}{
		"center_artist": s.CenterArtist,
		"graph_json":    s.Graph,
		"memo":          s.Memo,
		"image_base64":  s.Thumbnail,
		"path":          s.Path,
	}

	res, err := g.client.Do(ctx, http.MethodPost, g.baseURL+"/api/save-network/", payload)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return snapshot.Snapshot{}, errorFromResponse(res)
	}

	var created snapshot.Snapshot
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return snapshot.Snapshot{}, apperrors.NewServerError("malformed snapshot response").WithCause(err)
	}
	g.logger.Debug("snapshot created", zap.Int64("id", created.ID))
	return created, nil
}

// Update changes a snapshot's memo. Unknown ids come back as NotFound.
func (g *SnapshotGateway) Update(ctx context.Context, id int64, memo string) error {
	url := g.baseURL + "/api/update-network/" + formatID(id) + "/"
	res, err := g.client.Do(ctx, http.MethodPatch, url, map[string]string{"memo": memo})
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return errorFromResponse(res)
	}
	return nil
}

// Delete removes a snapshot. A second delete of the same id reports
// NotFound; callers treat both outcomes as success for UI purposes.
func (g *SnapshotGateway) Delete(ctx context.Context, id int64) error {
	url := g.baseURL + "/api/delete-network/" + formatID(id) + "/"
	res, err := g.client.Do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return errorFromResponse(res)
	}
	return nil
}
