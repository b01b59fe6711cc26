package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundmap/pkg/auth"
	apperrors "soundmap/pkg/errors"
)

func newAccountFixture(t *testing.T) (*Account, *Store, *auth.TokenIssuer) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", "soundmap-dev")

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "alice" || body.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"detail": "No active account found with the given credentials",
			})
			return
		}
		access, refresh, err := issuer.IssuePair(body.Username)
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]string{"access": access, "refresh": refresh})
	})
	mux.HandleFunc("/api/signup/", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&body)
		if body.Username == "alice" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Username already exists"})
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := NewStore("")
	client := NewClient(store, srv.URL, testTimeout, nil, nil)
	return NewAccount(store, srv.URL, client, nil), store, issuer
}

// Scenario: login with valid credentials fills the store with the token
// pair and the identity decoded from the access token.
func TestLoginStoresCredentialWithIdentity(t *testing.T) {
	account, store, _ := newAccountFixture(t)

	err := account.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	cred, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", cred.Identity)
	assert.NotEmpty(t, cred.AccessToken)
	assert.NotEmpty(t, cred.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	account, store, _ := newAccountFixture(t)

	err := account.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid username or password")

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestLoginEmptyInputNeverReachesNetwork(t *testing.T) {
	store := NewStore("")
	client := NewClient(store, "http://127.0.0.1:1", testTimeout, nil, nil)
	account := NewAccount(store, "http://127.0.0.1:1", client, nil)

	err := account.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSignupDuplicateUsername(t *testing.T) {
	account, _, _ := newAccountFixture(t)

	require.NoError(t, account.Signup(context.Background(), "bob", "pw"))

	err := account.Signup(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username already exists")
}

func TestLogoutClearsStore(t *testing.T) {
	account, store, _ := newAccountFixture(t)
	require.NoError(t, account.Login(context.Background(), "alice", "pw"))

	account.Logout()

	_, ok := store.Current()
	assert.False(t, ok)
}
