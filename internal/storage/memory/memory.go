// Package memory provides an in-process implementation of storage.Store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mmynk/splitledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps JSON-encoded values in a map. Values are copied on every
// Load and Save, so callers never share memory with the store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Load decodes the value under key into dest.
func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	if key == "" {
		return false, storage.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Save encodes value and stores it under key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
