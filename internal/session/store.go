package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Store persists the credential across process restarts.
type Store interface {
	// Load returns "" when no credential is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type storedCredential struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// FileStore keeps the credential in a yaml file readable only by the owner.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

// Load implements Store.
func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "session: read credential file")
	}

	var cred storedCredential
	if err := yaml.Unmarshal(data, &cred); err != nil {
		return "", eris.Wrap(err, "session: parse credential file")
	}
	return cred.Token, nil
}

// Save implements Store.
func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return eris.Wrap(err, "session: create credential dir")
	}
	data, err := yaml.Marshal(storedCredential{Token: token, SavedAt: f.now().UTC()})
	if err != nil {
		return eris.Wrap(err, "session: encode credential")
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return eris.Wrap(err, "session: write credential file")
	}
	return nil
}

// Clear implements Store. Clearing an absent file is not an error.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return eris.Wrap(err, "session: remove credential file")
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	Token string
}

// Load implements Store.
func (m *MemoryStore) Load() (string, error) { return m.Token, nil }

// Save implements Store.
func (m *MemoryStore) Save(token string) error {
	m.Token = token
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.Token = ""
	return nil
}
