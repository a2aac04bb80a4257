// Package session owns the client-side session: the current user identity,
// its bearer token, and the token's durable persistence.
//
// The Manager is the only writer of session state. Views read it through
// Snapshot and never mutate it directly. It implements api.TokenSource so
// the HTTP client picks the token up without a global.
package session

import (
	"context"
	"sync"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/log"
)

// Snapshot is a point-in-time read of the session state
type Snapshot struct {
	// User is the verified identity, nil when logged out
	User *api.User

	// Loading is true from process start until Bootstrap resolves
	Loading bool
}

// Manager holds session state and drives the auth lifecycle.
//
// Invariant: User is non-nil only while the token is non-empty and has
// been validated against the API.
type Manager struct {
	mu      sync.RWMutex
	token   string
	user    *api.User
	loading bool

	store  *TokenStore
	logger *log.Logger

	// client is set after construction to break the ordering cycle:
	// the API client needs the Manager as its TokenSource.
	client *api.Client
}

// NewManager creates a session manager. The session starts in the
// loading state until Bootstrap resolves it.
func NewManager(store *TokenStore, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		store:   store,
		loading: true,
		logger:  logger,
	}
}

// SetClient wires in the API client used for auth calls.
// Must be called before Bootstrap, Login or Signup.
func (m *Manager) SetClient(client *api.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = client
}

// Token implements api.TokenSource
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Snapshot returns the current session state
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{User: m.user, Loading: m.loading}
}

// CurrentUser returns the verified identity, or nil when logged out
func (m *Manager) CurrentUser() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Bootstrap resolves the session from the persisted token.
//
// With no persisted token the session resolves immediately to logged out.
// With one, the token is set optimistically and verified against the
// identity endpoint; any failure clears both the in-memory session and
// the persisted token. The loading flag clears only once this resolves.
func (m *Manager) Bootstrap(ctx context.Context) error {
	saved, err := m.store.Load()
	if err != nil || saved == "" {
		m.resolve("", nil)
		return err
	}

	m.mu.Lock()
	m.token = saved
	client := m.client
	m.mu.Unlock()

	user, err := client.Me(ctx)
	if err != nil {
		m.logger.WithError(err).Debug("persisted token rejected, clearing session")
		m.resolve("", nil)
		if clearErr := m.store.Clear(); clearErr != nil {
			return clearErr
		}
		// A rejected token is the normal logged-out state, not an error.
		return nil
	}

	m.resolve(saved, user)
	return nil
}

// Login authenticates and establishes a new session.
// On success the token is persisted; on failure the caller displays the
// error and session state is unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	success, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.establish(success)
}

// Signup registers a new account and establishes a session, same
// contract as Login.
func (m *Manager) Signup(ctx context.Context, email, password, name string) error {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	success, err := client.Signup(ctx, email, password, name)
	if err != nil {
		return err
	}
	return m.establish(success)
}

// Logout clears the session and removes the persisted token.
// Synchronous, no network call.
func (m *Manager) Logout() {
	m.resolve("", nil)
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("failed to remove persisted token")
	}
}

// establish atomically installs a verified token+user pair and persists
// the token.
func (m *Manager) establish(success *api.AuthSuccess) error {
	user := success.User
	m.resolve(success.AccessToken, &user)
	return m.store.Save(success.AccessToken)
}

// resolve replaces the session state wholesale and clears the loading flag
func (m *Manager) resolve(token string, user *api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user
	m.loading = false
}
