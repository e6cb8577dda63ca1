package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore holds state for ephemeral runs and tests. Values still pass
// through the JSON boundary so it round-trips exactly like the durable
// backends.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode value for key %q: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for key %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
