package cacheinfra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platefork/recipe-core/cache"
)

func TestDefaultSturdycConfig_IsValid(t *testing.T) {
	if err := DefaultSturdycConfig().Validate(); err != nil {
		t.Errorf("expected default config to validate but got: %v", err)
	}
}

func TestSturdycConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SturdycConfig)
	}{
		{"zero capacity", func(c *SturdycConfig) { c.Capacity = 0 }},
		{"negative shards", func(c *SturdycConfig) { c.NumShards = -1 }},
		{"zero max ttl", func(c *SturdycConfig) { c.MaxTTL = 0 }},
		{"eviction percentage too low", func(c *SturdycConfig) { c.EvictionPercentage = 0 }},
		{"eviction percentage too high", func(c *SturdycConfig) { c.EvictionPercentage = 101 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSturdycConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error but got nil")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *ConfigError but got %T", err)
			}
		})
	}
}

func TestSturdycStore_SetGetDelete(t *testing.T) {
	store, err := NewSturdycStore(DefaultSturdycConfig())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "recipe:1", []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	data, err := store.Get(ctx, "recipe:1")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if string(data) != "snapshot" {
		t.Errorf("expected snapshot but got %q", data)
	}

	if err := store.Delete(ctx, "recipe:1"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := store.Get(ctx, "recipe:1"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("expected ErrMiss after delete but got: %v", err)
	}
}

func TestSturdycStore_MissingKeyIsMiss(t *testing.T) {
	store, err := NewSturdycStore(DefaultSturdycConfig())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, err := store.Get(context.Background(), "recipe:absent"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("expected ErrMiss but got: %v", err)
	}
}

func TestSturdycStore_ExpiredEntryIsMiss(t *testing.T) {
	store, err := NewSturdycStore(DefaultSturdycConfig())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "recipe:1", []byte("snapshot"), time.Millisecond); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, "recipe:1"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("expected expired entry to miss but got: %v", err)
	}
}

func TestSturdycStore_FlushAll(t *testing.T) {
	store, err := NewSturdycStore(DefaultSturdycConfig())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"recipe:1", "recipe:2", "recipes:page:1:20"} {
		if err := store.Set(ctx, key, []byte("snapshot"), time.Minute); err != nil {
			t.Fatalf("unexpected set error: %v", err)
		}
	}

	if err := store.FlushAll(ctx); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}

	for _, key := range []string{"recipe:1", "recipe:2", "recipes:page:1:20"} {
		if _, err := store.Get(ctx, key); !errors.Is(err, cache.ErrMiss) {
			t.Errorf("expected %s to be flushed but got: %v", key, err)
		}
	}
}
