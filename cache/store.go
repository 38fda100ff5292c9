package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by a Store when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the cache store collaborator: a key-value store with per-key
// expiry. It is an accelerator, never a source of truth — every call is
// best-effort from the coordinator's perspective, and no other component
// talks to it directly.
type Store interface {
	// Get returns the snapshot stored under key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the whole snapshot under key atomically with the given
	// expiry. A non-positive ttl falls back to the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// FlushAll drops every entry in the store.
	FlushAll(ctx context.Context) error
}
