package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"soundmap/infrastructure/persistence/memory"
	"soundmap/pkg/common"
	apperrors "soundmap/pkg/errors"
)

const maxGraphBody = 1 << 16

// ArtistHandler serves artist search, top track and graph expansion.
type ArtistHandler struct {
	catalog *memory.Catalog
	logger  *zap.Logger
}

// NewArtistHandler creates an artist handler over the seeded catalog.
func NewArtistHandler(catalog *memory.Catalog, logger *zap.Logger) *ArtistHandler {
	return &ArtistHandler{catalog: catalog, logger: logger}
}

// Search handles GET /api/artists/?q=
func (h *ArtistHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		common.RespondError(w, http.StatusBadRequest, "Missing query")
		return
	}

	hits := h.catalog.Search(query)
	if hits == nil {
		hits = []memory.CatalogArtist{}
	}
	common.RespondData(w, http.StatusOK, hits)
}

type topTrackResponse struct {
	Title   string `json:"title_short"`
	Preview string `json:"preview"`
	Album   struct {
		Cover string `json:"cover"`
	} `json:"album"`
}

// TopTrack handles GET /api/artists/top/?id=
func (h *ArtistHandler) TopTrack(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	track, err := h.catalog.TopTrack(id)
	if err != nil {
		common.RespondData(w, http.StatusOK, []topTrackResponse{})
		return
	}

	item := topTrackResponse{Title: track.Title, Preview: track.PreviewURL}
	item.Album.Cover = track.CoverURL
	common.RespondData(w, http.StatusOK, []topTrackResponse{item})
}

type graphRequest struct {
	Artist string `json:"artist"`
	Level  int    `json:"level"`
}

// Graph handles POST /api/graph-json/, expanding the relation graph
// around the requested artist.
func (h *ArtistHandler) Graph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := common.ParseJSONBody(w, r, &req, maxGraphBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Artist == "" {
		common.RespondError(w, http.StatusBadRequest, "Missing artist")
		return
	}
	if req.Level == 0 {
		req.Level = 2
	}

	g, err := h.catalog.BuildGraph(req.Artist, req.Level)
	if err != nil {
		if apperrors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, "Artist not found")
			return
		}
		h.logger.Error("building graph", zap.Error(err), zap.String("artist", req.Artist))
		common.RespondError(w, http.StatusInternalServerError, "Could not build graph")
		return
	}

	h.logger.Debug("graph built",
		zap.String("artist", req.Artist),
		zap.Int("level", req.Level),
		zap.Int("nodes", len(g.Nodes)),
	)
	common.RespondJSON(w, http.StatusOK, g)
}
