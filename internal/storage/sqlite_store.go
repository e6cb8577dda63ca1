package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLiteStore persists keys in an embedded database. Same contract as
// FileStore, for deployments that prefer one .db file over a .json one.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS kv_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("%w: ensure kv_state schema: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) Get(key string, dest any) (bool, error) {
	var raw string
	const q = `SELECT value FROM kv_state WHERE key = ?`
	if err := s.db.QueryRow(q, key).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: query key %q: %v", ErrUnavailable, key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode value for key %q: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for key %q: %w", key, err)
	}

	const q = `
INSERT INTO kv_state (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.Exec(q, key, string(raw)); err != nil {
		return fmt.Errorf("%w: upsert key %q: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	const q = `DELETE FROM kv_state WHERE key = ?`
	if _, err := s.db.Exec(q, key); err != nil {
		return fmt.Errorf("%w: delete key %q: %v", ErrUnavailable, key, err)
	}
	return nil
}
