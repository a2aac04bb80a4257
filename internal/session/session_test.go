package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/errors"
)

// fixture wires a Manager to a fake API that accepts one token and one
// set of credentials.
type fixture struct {
	manager   *Manager
	store     *TokenStore
	tokenPath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{ID: 1, Email: "admin@example.com", Name: "Admin", Role: "admin"})
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds api.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.AuthSuccess{
			AccessToken: "valid-token",
			User:        api.User{ID: 1, Email: creds.Email, Name: "Admin", Role: "admin"},
		})
	})
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var req api.SignupRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(api.AuthSuccess{
			AccessToken: "valid-token",
			User:        api.User{ID: 2, Email: req.Email, Name: req.Name, Role: "user"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokenPath := filepath.Join(t.TempDir(), "auth_token.json")
	store := NewTokenStore(tokenPath)
	manager := NewManager(store, nil)

	client, err := api.NewClient(api.Config{
		BaseURL: server.URL + "/api",
		Tokens:  manager,
	})
	require.NoError(t, err)
	manager.SetClient(client)

	return &fixture{manager: manager, store: store, tokenPath: tokenPath}
}

func (f *fixture) tokenFileExists() bool {
	_, err := os.Stat(f.tokenPath)
	return err == nil
}

func TestBootstrapWithoutToken(t *testing.T) {
	f := newFixture(t)

	snap := f.manager.Snapshot()
	assert.True(t, snap.Loading, "session should start loading")

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap = f.manager.Snapshot()
	assert.False(t, snap.Loading)
	assert.Nil(t, snap.User)
	assert.Empty(t, f.manager.Token())
}

func TestBootstrapWithValidToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save("valid-token"))

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.User)
	assert.Equal(t, "admin@example.com", snap.User.Email)
	assert.Equal(t, "valid-token", f.manager.Token())
	assert.True(t, f.tokenFileExists(), "valid token stays persisted")
}

func TestBootstrapWithRejectedToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save("expired-token"))

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	snap := f.manager.Snapshot()
	assert.False(t, snap.Loading)
	assert.Nil(t, snap.User)
	assert.Empty(t, f.manager.Token())
	assert.False(t, f.tokenFileExists(), "rejected token must be removed from disk")
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Bootstrap(context.Background()))

	require.NoError(t, f.manager.Login(context.Background(), "admin@example.com", "secret"))

	snap := f.manager.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "admin@example.com", snap.User.Email)
	assert.Equal(t, "valid-token", f.manager.Token())

	saved, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "valid-token", saved)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(f.tokenPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestLoginFailureLeavesSessionUnchanged(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Bootstrap(context.Background()))

	err := f.manager.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAuthInvalidCredentials))

	snap := f.manager.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, f.manager.Token())
	assert.False(t, f.tokenFileExists())
}

func TestSignup(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Bootstrap(context.Background()))

	require.NoError(t, f.manager.Signup(context.Background(), "new@example.com", "pw", "New User"))

	snap := f.manager.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "New User", snap.User.Name)
	assert.Equal(t, "valid-token", f.manager.Token())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Bootstrap(context.Background()))
	require.NoError(t, f.manager.Login(context.Background(), "admin@example.com", "secret"))

	f.manager.Logout()

	snap := f.manager.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, f.manager.Token())
	assert.False(t, f.tokenFileExists(), "logout removes the persisted token")
}

func TestSessionInvariant(t *testing.T) {
	// User non-nil implies token non-empty, across every lifecycle step.
	f := newFixture(t)
	check := func(step string) {
		snap := f.manager.Snapshot()
		if snap.User != nil {
			assert.NotEmpty(t, f.manager.Token(), "invariant violated after %s", step)
		}
	}

	check("construction")
	require.NoError(t, f.manager.Bootstrap(context.Background()))
	check("bootstrap")
	require.NoError(t, f.manager.Login(context.Background(), "admin@example.com", "secret"))
	check("login")
	f.manager.Logout()
	check("logout")
}

func TestTokenStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth_token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	token, err := NewTokenStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, token, "corrupt token file reads as logged out")
}

func TestTokenStoreClearIdempotent(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "auth_token.json"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}
