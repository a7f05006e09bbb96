// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// Keys under which the ledger persists its state.
const (
	KeyUsers    = "users"
	KeyExpenses = "expenses"
	KeyCurrency = "currency"
)

// ErrEmptyKey is returned when a store operation is given an empty key.
var ErrEmptyKey = errors.New("storage key cannot be empty")

// Store defines a durable key-value store for ledger state.
// Values are encoded as JSON, so any JSON-serializable type can be saved.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the ledger.
type Store interface {
	// Load decodes the value stored under key into dest.
	// It returns false, nil when nothing is stored under key.
	Load(ctx context.Context, key string, dest any) (bool, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value any) error

	// Close releases any resources held by the store.
	Close() error
}
