package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "soundmap/pkg/errors"
)

// Client wraps API calls with bearer-token injection, 401 detection, and a
// single transparent refresh-and-retry. On irrecoverable auth failure it
// clears the store and invokes the injected onSessionExpired callback, so
// the client stays decoupled from any particular navigation mechanism.
//
// Concurrency note: concurrent requests that all hit an expired access
// token each attempt their own refresh; refresh calls are not
// de-duplicated. The client tests pin this behavior down.
type Client struct {
	store            *Store
	http             *http.Client
	refreshURL       string
	onSessionExpired func()
	logger           *zap.Logger
}

// NewClient creates an authenticated API client. baseURL locates the
// token-refresh endpoint; onSessionExpired may be nil.
func NewClient(store *Store, baseURL string, timeout time.Duration, onSessionExpired func(), logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		store:            store,
		http:             &http.Client{Timeout: timeout},
		refreshURL:       baseURL + "/api/token/refresh/",
		onSessionExpired: onSessionExpired,
		logger:           logger,
	}
}

// Do sends an authenticated request. body, when non-nil, is marshaled to
// JSON. Any status other than 401 is terminal, success or not. A 401
// triggers one refresh and one resend; the resend's response is terminal
// even if it is another 401.
func (c *Client) Do(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewInternalError("encoding request body").WithCause(err)
		}
	}

	cred, ok := c.store.Current()
	token := ""
	if ok {
		token = cred.AccessToken
	}

	res, err := c.send(ctx, method, url, payload, token)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	if res.StatusCode != http.StatusUnauthorized {
		return res, nil
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()

	newAccess, err := c.refresh(ctx, cred.RefreshToken)
	if err != nil {
		c.expireSession()
		return nil, apperrors.NewSessionExpiredError().WithCause(err)
	}
	c.store.SetAccessToken(newAccess)

	c.logger.Debug("access token refreshed, retrying request",
		zap.String("method", method),
		zap.String("url", url),
	)

	// Single-retry ceiling: this response is terminal, 401 included
	res, err = c.send(ctx, method, url, payload, newAccess)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	return res, nil
}

func (c *Client) send(ctx context.Context, method, url string, payload []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

// refresh exchanges the refresh token for a new access token
func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", errors.New("no refresh token")
	}

	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	res, err := c.send(ctx, http.MethodPost, c.refreshURL, payload, "")
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		io.Copy(io.Discard, res.Body)
		return "", errors.New("refresh rejected")
	}

	var parsed struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Access == "" {
		return "", errors.New("refresh response missing access token")
	}
	return parsed.Access, nil
}

// expireSession tears the session down. Store.Clear reports whether a
// credential was present, which keeps the callback at exactly one firing
// per expiry even when concurrent requests fail refresh together.
func (c *Client) expireSession() {
	cleared := c.store.Clear()
	c.logger.Warn("session expired, credential cleared")
	if cleared && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// transportError tags a transport failure with the right error kind
func transportError(ctx context.Context, err error) error {
	var timeoutErr interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.NewTimeoutError("request").WithCause(err)
	case errors.As(err, &timeoutErr) && timeoutErr.Timeout():
		return apperrors.NewTimeoutError("request").WithCause(err)
	}
	return apperrors.NewNetworkError("request failed", err)
}
