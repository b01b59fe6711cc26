package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"soundmap/domain/snapshot"
	"soundmap/infrastructure/persistence/memory"
	"soundmap/pkg/auth"
	"soundmap/pkg/common"
	apperrors "soundmap/pkg/errors"
)

// Thumbnails ride along as base64 data URLs, so allow a larger body here.
const maxNetworkBody = 4 << 20

// NetworkHandler serves the saved-network endpoints. All routes sit behind
// the auth middleware, so a username is always on the context.
type NetworkHandler struct {
	store  *memory.Store
	logger *zap.Logger
}

// NewNetworkHandler creates a network handler.
func NewNetworkHandler(store *memory.Store, logger *zap.Logger) *NetworkHandler {
	return &NetworkHandler{store: store, logger: logger}
}

// Save handles POST /api/save-network/
func (h *NetworkHandler) Save(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		common.RespondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var snap snapshot.Snapshot
	if err := common.ParseJSONBody(w, r, &snap, maxNetworkBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if snap.CenterArtist == "" || len(snap.Graph.Nodes) == 0 {
		common.RespondError(w, http.StatusBadRequest, "Missing data")
		return
	}

	stored, err := h.store.SaveNetwork(username, snap)
	if err != nil {
		h.logger.Error("saving network", zap.Error(err), zap.String("username", username))
		common.RespondError(w, http.StatusInternalServerError, "Could not save network")
		return
	}

	h.logger.Info("network saved",
		zap.String("username", username),
		zap.Int64("id", stored.ID),
		zap.String("centerArtist", stored.CenterArtist),
	)
	common.RespondJSON(w, http.StatusCreated, stored)
}

// List handles GET /api/my-networks/
func (h *NetworkHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		common.RespondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	rows, err := h.store.ListNetworks(username)
	if err != nil {
		h.logger.Error("listing networks", zap.Error(err), zap.String("username", username))
		common.RespondError(w, http.StatusInternalServerError, "Could not list networks")
		return
	}
	common.RespondJSON(w, http.StatusOK, rows)
}

type memoRequest struct {
	Memo string `json:"memo"`
}

// UpdateMemo handles PATCH /api/update-network/{id}/
func (h *NetworkHandler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		common.RespondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid network id")
		return
	}

	var req memoRequest
	if err := common.ParseJSONBody(w, r, &req, maxAuthBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.UpdateMemo(username, id, req.Memo); err != nil {
		if apperrors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, "Network not found")
			return
		}
		h.logger.Error("updating memo", zap.Error(err), zap.Int64("id", id))
		common.RespondError(w, http.StatusInternalServerError, "Could not update network")
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Memo updated"})
}

// Delete handles DELETE /api/delete-network/{id}/
func (h *NetworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		common.RespondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid network id")
		return
	}

	if err := h.store.DeleteNetwork(username, id); err != nil {
		if apperrors.IsNotFound(err) {
			common.RespondError(w, http.StatusNotFound, "Network not found")
			return
		}
		h.logger.Error("deleting network", zap.Error(err), zap.Int64("id", id))
		common.RespondError(w, http.StatusInternalServerError, "Could not delete network")
		return
	}

	h.logger.Info("network deleted", zap.String("username", username), zap.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
