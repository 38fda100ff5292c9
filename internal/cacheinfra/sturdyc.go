// Package cacheinfra provides the cache.Store backends: a Redis client for
// deployments and an in-process sturdyc cache for embedded and test use.
package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/platefork/recipe-core/cache"
)

// SturdycConfig holds the configuration for the in-process store.
type SturdycConfig struct {
	// Capacity is the maximum number of entries. Must be greater than 0.
	Capacity int

	// NumShards controls shard count for concurrent access. Must be
	// greater than 0.
	NumShards int

	// MaxTTL is the client-level expiry ceiling. Per-key TTLs passed to Set
	// are tracked by the adapter; entries whose key-level TTL has passed
	// report a miss even if sturdyc still holds them.
	MaxTTL time.Duration

	// EvictionPercentage is the share of entries evicted at capacity,
	// between 1 and 100.
	EvictionPercentage int
}

// DefaultSturdycConfig returns sensible defaults for most use cases.
func DefaultSturdycConfig() SturdycConfig {
	return SturdycConfig{
		Capacity:           10000,
		NumShards:          64,
		MaxTTL:             time.Hour,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c SturdycConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.MaxTTL <= 0 {
		return &ConfigError{Field: "MaxTTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// entry pairs a serialized snapshot with its key-level deadline.
type entry struct {
	Value     []byte
	ExpiresAt time.Time
}

// sturdycStore adapts a sturdyc client to cache.Store.
type sturdycStore struct {
	client *sturdyc.Client[entry]
	maxTTL time.Duration
}

// NewSturdycStore creates the in-process store.
//
// Version compatibility note: this assumes the sturdyc v1.x API.
func NewSturdycStore(cfg SturdycConfig) (cache.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := sturdyc.New[entry](cfg.Capacity, cfg.NumShards, cfg.MaxTTL, cfg.EvictionPercentage)
	return &sturdycStore{client: client, maxTTL: cfg.MaxTTL}, nil
}

func (s *sturdycStore) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok := s.client.Get(key)
	if !ok {
		return nil, cache.ErrMiss
	}
	if time.Now().After(e.ExpiresAt) {
		s.client.Delete(key)
		return nil, cache.ErrMiss
	}
	return e.Value, nil
}

func (s *sturdycStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > s.maxTTL {
		ttl = s.maxTTL
	}
	s.client.Set(key, entry{Value: value, ExpiresAt: time.Now().Add(ttl)})
	return nil
}

func (s *sturdycStore) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

func (s *sturdycStore) FlushAll(ctx context.Context) error {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
	return nil
}
