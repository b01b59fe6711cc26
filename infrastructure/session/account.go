package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"soundmap/pkg/auth"
	apperrors "soundmap/pkg/errors"
)

// noActiveAccountDetail is the backend's exact wording for a credential
// mismatch; it gets mapped to a friendlier message.
const noActiveAccountDetail = "No active account found with the given credentials"

var validate = validator.New()

type credentialsInput struct {
	Username string `validate:"required,min=1,max=150"`
	Password string `validate:"required,min=1"`
}

// Account performs login, signup and logout against the token endpoints,
// installing the resulting credential into the store. Login and signup are
// anonymous calls, so they bypass the authenticated client.
type Account struct {
	store   *Store
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewAccount creates an account service
func NewAccount(store *Store, baseURL string, client *Client, logger *zap.Logger) *Account {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Account{
		store:   store,
		http:    client.http,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Login obtains a token pair, decodes the identity claim out of the access
// token and stores all three as one atomic credential transition.
func (a *Account) Login(ctx context.Context, username, password string) error {
	if err := validate.Struct(credentialsInput{Username: username, Password: password}); err != nil {
		return apperrors.NewValidationError("username and password are required")
	}

	res, err := a.post(ctx, "/api/token/", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail := decodeDetail(res.Body)
		if detail == noActiveAccountDetail {
			return apperrors.NewUnauthorizedError("invalid username or password")
		}
		if detail == "" {
			detail = "login failed"
		}
		return apperrors.NewUnauthorizedError(detail)
	}

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(res.Body).Decode(&tokens); err != nil {
		return apperrors.NewServerError("malformed token response").WithCause(err)
	}

	identity, err := auth.DecodeIdentity(tokens.Access)
	if err != nil {
		return apperrors.NewServerError("access token carries no identity").WithCause(err)
	}

	a.store.SetCredential(tokens.Access, tokens.Refresh, identity)
	a.logger.Info("logged in", zap.String("identity", identity))
	return nil
}

// Signup registers a new account. It does not log the user in; the
// backend hands out tokens only through the token endpoint.
func (a *Account) Signup(ctx context.Context, username, password string) error {
	if err := validate.Struct(credentialsInput{Username: username, Password: password}); err != nil {
		return apperrors.NewValidationError("username and password are required")
	}

	res, err := a.post(ctx, "/api/signup/", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail := decodeDetail(res.Body)
		if detail == "" {
			detail = "signup failed"
		}
		return apperrors.NewValidationError(detail)
	}
	return nil
}

// Logout drops the credential. Purely local; the backend keeps no session.
func (a *Account) Logout() {
	if a.store.Clear() {
		a.logger.Info("logged out")
	}
}

func (a *Account) post(ctx context.Context, path string, body map[string]string) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.NewInternalError("encoding request body").WithCause(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, jsonReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError("building request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.http.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	return res, nil
}
