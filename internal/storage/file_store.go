package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps every key in a single JSON state file, the local
// equivalent of one origin-scoped browser store. Each operation re-reads the
// file so the file stays authoritative; writes replace it whole.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("state file path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.readState()
	if err != nil {
		return false, err
	}
	raw, ok := state[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode value for key %q: %w", key, err)
	}
	return true, nil
}

func (s *FileStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for key %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.readState()
	if err != nil {
		return err
	}
	state[key] = raw
	return s.writeState(state)
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.readState()
	if err != nil {
		return err
	}
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return s.writeState(state)
}

func (s *FileStore) readState() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, fmt.Errorf("%w: read state file: %v", ErrUnavailable, err)
	}
	if len(b) == 0 {
		return make(map[string]json.RawMessage), nil
	}
	state := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("%w: decode state file: %v", ErrUnavailable, err)
	}
	return state, nil
}

func (s *FileStore) writeState(state map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir state dir: %v", ErrUnavailable, err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("%w: write state file: %v", ErrUnavailable, err)
	}
	return nil
}
