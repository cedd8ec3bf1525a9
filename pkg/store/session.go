package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-newsreader/pkg/client"
)

// Session is the persisted authentication snapshot.
type Session struct {
	Token string      `json:"token"`
	User  client.User `json:"user"`
}

// SessionStorage persists sessions across restarts. Load reports whether a
// session exists.
type SessionStorage interface {
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

type memoryStorage struct {
	mu   sync.Mutex
	sess *Session
}

// NewMemorySessionStorage keeps the session in process memory only.
func NewMemorySessionStorage() SessionStorage {
	return &memoryStorage{}
}

func (m *memoryStorage) Load() (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return Session{}, false, nil
	}
	return *m.sess, true, nil
}

func (m *memoryStorage) Save(sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &sess
	return nil
}

func (m *memoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}

type fileStorage struct {
	path string
}

// NewFileSessionStorage persists the session as a JSON file at path.
func NewFileSessionStorage(path string) SessionStorage {
	return &fileStorage{path: path}
}

func (f *fileStorage) Load() (Session, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false, fmt.Errorf("store: decode session: %w", err)
	}
	if sess.Token == "" {
		return Session{}, false, nil
	}
	return sess, true, nil
}

func (f *fileStorage) Save(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode session: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *fileStorage) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
