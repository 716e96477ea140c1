package texts

import (
	"context"
	"errors"
	"sync"
)

// StorageKey names the single record holding admin overrides, in every
// backend.
const StorageKey = "portfolio_site_texts"

// ErrCorrupt is returned when the stored record cannot be decoded.
var ErrCorrupt = errors.New("stored site texts are corrupt")

// Store persists the admin's site text overrides as one JSON object.
// Load returns a nil map when nothing was saved yet.
type Store interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, texts map[string]string) error
}

// MemoryStore keeps overrides in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	texts map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.texts == nil {
		return nil, nil
	}
	return copyMap(s.texts), nil
}

func (s *MemoryStore) Save(ctx context.Context, texts map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = copyMap(texts)
	return nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
