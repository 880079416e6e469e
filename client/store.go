package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Key is what a signed-in user agent persists between runs.
type Key struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// KeyStore persists the Key of the signed-in user.
type KeyStore interface {
	// Load reports false when no key is stored.
	Load() (Key, bool, error)
	Save(key Key) error
	Clear() error
}

// FileStore keeps the Key as JSON in a file readable by its owner only.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ KeyStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Key, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Key{}, false, nil
		}
		return Key{}, false, errors.Wrap(err, "reading key file")
	}
	var key Key
	if err := json.Unmarshal(data, &key); err != nil {
		return Key{}, false, errors.Wrap(err, "decoding key file")
	}
	if key.UserID == "" || key.Token == "" {
		return Key{}, false, nil
	}
	return key, true, nil
}

func (s *FileStore) Save(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(key)
	if err != nil {
		return errors.Wrap(err, "encoding key")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating key dir")
	}
	return errors.Wrap(os.WriteFile(s.path, data, 0o600), "writing key file")
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing key file")
	}
	return nil
}
