// Package tokenstore persists the session credential to a single slot on
// the local filesystem so a session survives client restarts. It is a pure
// storage boundary: no network access and no reactive side effects.
package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/docustore/admin-console/internal/core/domain"
)

const slotName = "credential.json"

// Store reads and writes the credential slot inside its directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. An empty dir falls back to DefaultDir.
func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// DefaultDir resolves the per-user config directory for the client.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "dmsadm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dmsadm")
}

// Save serializes the credential into the slot, overwriting any prior value.
func (s *Store) Save(cred domain.Credential) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), b, 0o600)
}

// Load reads the slot. A missing slot reports absent; malformed content
// deletes the slot and reports absent. It never returns an error: a
// credential that cannot be read is a credential that does not exist.
func (s *Store) Load() (domain.Credential, bool) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		return domain.Credential{}, false
	}
	var cred domain.Credential
	if err := json.Unmarshal(b, &cred); err != nil || cred.Token == "" {
		_ = os.Remove(s.path())
		return domain.Credential{}, false
	}
	return cred, true
}

// Clear removes the slot. Removing an already-empty slot is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, slotName)
}
