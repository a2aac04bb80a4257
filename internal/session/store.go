package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/commercehq/shopctl/internal/errors"
)

// storedToken is the on-disk shape of the persisted credential
type storedToken struct {
	AccessToken string    `json:"accessToken"`
	SavedAt     time.Time `json:"savedAt"`
}

// TokenStore persists the session token across runs.
// It holds exactly one token; saving replaces any previous one.
type TokenStore struct {
	path string
}

// NewTokenStore creates a token store backed by the given file path
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Save writes the token to disk, creating the state directory if needed.
// The file is user-readable only.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed,
			fmt.Sprintf("failed to create state directory: %s", filepath.Dir(s.path)), err)
	}

	data, err := json.MarshalIndent(storedToken{
		AccessToken: token,
		SavedAt:     time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreFailed, "failed to encode token", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed,
			fmt.Sprintf("failed to write token file: %s", s.path), err)
	}
	return nil
}

// Load reads the persisted token. A missing file yields an empty token
// and no error; that is the normal logged-out state.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read token file: %s", s.path), err)
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt token file is treated as logged out rather than fatal.
		return "", nil
	}
	return stored.AccessToken, nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed,
			fmt.Sprintf("failed to remove token file: %s", s.path), err)
	}
	return nil
}
