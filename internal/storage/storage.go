// Package storage provides the persistent key-value store backing every
// entity collection. Values cross a JSON serialize/deserialize boundary on
// every access; the store is the single source of truth across restarts.
package storage

import "errors"

// ErrUnavailable reports that the backing store cannot be read or written
// (disk full, file unwritable, database gone). Callers surface it as a hard
// failure since no data can be saved.
var ErrUnavailable = errors.New("storage unavailable")

type Store interface {
	// Get decodes the value under key into dest. A missing key is not an
	// error: Get returns (false, nil) and leaves dest untouched.
	Get(key string, dest any) (bool, error)

	// Set serializes value as JSON and persists it under key, replacing any
	// previous value. Failures wrap ErrUnavailable.
	Set(key string, value any) error

	// Remove deletes the value under key. Removing an absent key is a no-op.
	Remove(key string) error
}
