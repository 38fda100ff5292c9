package cache

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Coordinator is the single authority for read-through and invalidation.
// Store failures degrade to loader reads and are logged, never propagated
// as request errors; only the authoritative store can fail a request.
type Coordinator struct {
	store Store
	cfg   Config
	log   *zap.Logger

	// keys tracks every key this process has written so prefix invalidation
	// can enumerate them without a backend scan.
	keys sync.Map
}

// New validates the TTL policy and wraps the given store.
func New(store Store, cfg Config, log *zap.Logger) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{store: store, cfg: cfg, log: log}, nil
}

// Policy returns the TTL configuration in effect.
func (c *Coordinator) Policy() Config { return c.cfg }

// LoadFunc queries the authoritative store on a cache miss.
type LoadFunc[T any] func(ctx context.Context) (T, error)

type readOptions struct {
	cacheEmpty bool
}

// ReadOption adjusts a single read-through call.
type ReadOption func(*readOptions)

// CacheEmpty opts a read into caching empty or missing results. The default
// is to return empty results without touching the store, so absent entities
// are re-checked against the source of truth on every read.
func CacheEmpty() ReadOption {
	return func(o *readOptions) { o.cacheEmpty = true }
}

// ReadThrough looks up key and deserializes the snapshot on a hit. On a
// miss it invokes load, caches any non-empty result under key with the
// given expiry, and returns it. Loader errors are returned as-is and never
// cached.
func ReadThrough[T any](ctx context.Context, c *Coordinator, key string, ttl time.Duration, load LoadFunc[T], opts ...ReadOption) (T, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	if data, err := c.fetch(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		// An undecodable snapshot is treated as a miss and overwritten below.
		c.log.Warn("cache: dropping undecodable snapshot", zap.String("key", key))
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if !isEmpty(v) || o.cacheEmpty {
		c.put(ctx, key, v, ttl)
	}
	return v, nil
}

// Prime writes a snapshot eagerly, outside the miss path. Used right after
// creation, when the snapshot is known fresh.
func (c *Coordinator) Prime(ctx context.Context, key string, v any, ttl time.Duration) {
	c.put(ctx, key, v, ttl)
}

// Invalidate deletes the given keys. Failures are logged; a key that cannot
// be deleted will still expire at its TTL.
func (c *Coordinator) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		sctx, cancel := c.bound(ctx)
		err := c.store.Delete(sctx, key)
		cancel()
		if err != nil {
			c.log.Warn("cache: delete failed", zap.String("key", key), zap.Error(err))
			continue
		}
		c.keys.Delete(key)
	}
}

// InvalidatePrefix deletes every tracked key starting with prefix. It is
// deliberately coarse: over-invalidation is acceptable, under-invalidation
// is not.
func (c *Coordinator) InvalidatePrefix(ctx context.Context, prefix string) {
	var stale []string
	c.keys.Range(func(k, _ any) bool {
		if key, ok := k.(string); ok && strings.HasPrefix(key, prefix) {
			stale = append(stale, key)
		}
		return true
	})
	c.Invalidate(ctx, stale...)
}

// Flush drops the entire store. Unlike the request paths this reports
// failure, since its only caller is an explicit administrative operation.
func (c *Coordinator) Flush(ctx context.Context) error {
	sctx, cancel := c.bound(ctx)
	defer cancel()
	if err := c.store.FlushAll(sctx); err != nil {
		return err
	}
	c.keys.Range(func(k, _ any) bool {
		c.keys.Delete(k)
		return true
	})
	return nil
}

func (c *Coordinator) fetch(ctx context.Context, key string) ([]byte, error) {
	sctx, cancel := c.bound(ctx)
	defer cancel()
	data, err := c.store.Get(sctx, key)
	if err != nil && err != ErrMiss {
		c.log.Warn("cache: get failed", zap.String("key", key), zap.Error(err))
	}
	return data, err
}

func (c *Coordinator) put(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache: marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	sctx, cancel := c.bound(ctx)
	defer cancel()
	if err := c.store.Set(sctx, key, data, ttl); err != nil {
		c.log.Warn("cache: set failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.keys.Store(key, struct{}{})
}

func (c *Coordinator) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cfg.StoreTimeout)
}

// isEmpty reports whether a loader result carries no data: a nil pointer,
// a nil or zero-length slice or map, or an empty string.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	case reflect.String:
		return rv.Len() == 0
	}
	return false
}
