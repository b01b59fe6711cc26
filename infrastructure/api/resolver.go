// Package api implements the HTTP request/response mappings for the
// artist-catalog and snapshot endpoints.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"soundmap/application/ports"
	"soundmap/domain/exploration"
	apperrors "soundmap/pkg/errors"
)

// Resolver resolves artist names and preview tracks through the catalog
// proxy endpoints. Both are anonymous calls.
type Resolver struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewResolver creates a catalog resolver
func NewResolver(baseURL string, timeout time.Duration, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Resolve finds the canonical catalog entry for a raw query. The first
// result is the canonical match; an empty result set means not found.
func (r *Resolver) Resolve(ctx context.Context, query string) (ports.Artist, error) {
	endpoint := r.baseURL + "/api/artists/?q=" + url.QueryEscape(query)

	var parsed struct {
		Data []ports.Artist `json:"data"`
	}
	if err := r.getJSON(ctx, endpoint, &parsed); err != nil {
		return ports.Artist{}, err
	}
	if len(parsed.Data) == 0 {
		return ports.Artist{}, apperrors.NewNotFoundError("artist")
	}
	return parsed.Data[0], nil
}

// TopTrack fetches the artist's most popular track. It resolves the name
// first because the top-track endpoint is keyed by catalog id.
func (r *Resolver) TopTrack(ctx context.Context, artist string) (exploration.Track, error) {
	entry, err := r.Resolve(ctx, artist)
	if err != nil {
		return exploration.Track{}, err
	}

	endpoint := r.baseURL + "/api/artists/top/?id=" + url.QueryEscape(formatID(entry.ID))

	var parsed struct {
		Data []struct {
			TitleShort string `json:"title_short"`
			Preview    string `json:"preview"`
			Album      struct {
				Cover string `json:"cover"`
			} `json:"album"`
		} `json:"data"`
	}
	if err := r.getJSON(ctx, endpoint, &parsed); err != nil {
		return exploration.Track{}, err
	}
	if len(parsed.Data) == 0 {
		return exploration.Track{}, apperrors.NewNotFoundError("top track")
	}
	track := parsed.Data[0]
	return exploration.Track{
		Title:      track.TitleShort,
		PreviewURL: track.Preview,
		CoverURL:   track.Album.Cover,
	}, nil
}

func (r *Resolver) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperrors.NewInternalError("building request").WithCause(err)
	}

	res, err := r.http.Do(req)
	if err != nil {
		return tagTransportError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return errorFromResponse(res)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return apperrors.NewServerError("malformed catalog response").WithCause(err)
	}
	return nil
}
