package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"soundmap/infrastructure/persistence/memory"
	"soundmap/pkg/auth"
	"soundmap/pkg/common"
)

const maxAuthBody = 1 << 16

// AuthHandler implements the token and signup endpoints.
type AuthHandler struct {
	store    *memory.Store
	issuer   *auth.TokenIssuer
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(store *memory.Store, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		store:    store,
		issuer:   issuer,
		validate: validator.New(),
		logger:   logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Token handles POST /api/token/. Bad credentials answer 401 with the
// "detail" body the client maps to its login error.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := common.ParseJSONBody(w, r, &req, maxAuthBody); err != nil {
		common.RespondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondDetail(w, http.StatusBadRequest, "This field is required.")
		return
	}

	if !h.store.Authenticate(req.Username, req.Password) {
		common.RespondDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	access, refresh, err := h.issuer.IssuePair(req.Username)
	if err != nil {
		h.logger.Error("issuing token pair", zap.Error(err))
		common.RespondDetail(w, http.StatusInternalServerError, "Could not issue tokens")
		return
	}

	h.logger.Info("user logged in", zap.String("username", req.Username))
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"access":  access,
		"refresh": refresh,
	})
}

// Refresh handles POST /api/token/refresh/, exchanging a refresh token for
// a fresh access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := common.ParseJSONBody(w, r, &req, maxAuthBody); err != nil {
		common.RespondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondDetail(w, http.StatusBadRequest, "This field is required.")
		return
	}

	claims, err := h.issuer.ValidateRefresh(req.Refresh)
	if err != nil {
		common.RespondDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}
	if !h.store.HasUser(claims.Username) {
		common.RespondDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	access, err := h.issuer.IssueAccess(claims.Username)
	if err != nil {
		h.logger.Error("issuing access token", zap.Error(err))
		common.RespondDetail(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"access": access})
}

// Signup handles POST /api/signup/. Failures use the "error" body field,
// unlike the token endpoints.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := common.ParseJSONBody(w, r, &req, maxAuthBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if err := h.store.CreateUser(req.Username, req.Password); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	h.logger.Info("user signed up", zap.String("username", req.Username))
	common.RespondJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}
