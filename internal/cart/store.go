// internal/cart/store.go
package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStore keeps persisted carts in memory. Useful for tests and for
// sessions that opt out of durable storage.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]Item)}
}

func (s *MemoryStore) Load(key string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.data[key]))
	copy(items, s.data[key])
	return items, nil
}

func (s *MemoryStore) Save(key string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]Item, len(items))
	copy(stored, items)
	s.data[key] = stored
	return nil
}

// FileStore persists carts as JSON files in a directory, one file per
// namespace key, so a cart survives client restarts. Last writer wins
// across concurrent sessions.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(key string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStore) Save(key string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
