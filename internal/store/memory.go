package store

import "sync"

// MemoryStore keeps pastes in process memory. Pastes never expire.
type MemoryStore struct {
	mu     sync.RWMutex
	pastes map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{pastes: make(map[string]string)}
}

func (s *MemoryStore) Get(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.pastes[id]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Create(id string, body []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pastes[id]; ok {
		return false, nil
	}
	s.pastes[id] = string(body)
	return true, nil
}
