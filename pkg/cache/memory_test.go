package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGetString(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got string
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	err := mc.Get(context.Background(), "absent", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheTypedRoundTrip(t *testing.T) {
	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "p", payload{Name: "fund", Value: 104.3}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got payload
	if err := mc.Get(ctx, "p", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "fund" || got.Value != 104.3 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestMemoryCacheEvictsOldest(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", time.Minute)
	_ = mc.Set(ctx, "b", "2", time.Minute)

	// Touch "a" so "b" becomes the eviction candidate.
	var s string
	_ = mc.Get(ctx, "a", &s)

	_ = mc.Set(ctx, "c", "3", time.Minute)

	ok, err := mc.Exists(ctx, "b")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatalf("least recently used entry must be evicted")
	}
	if ok, _ := mc.Exists(ctx, "a"); !ok {
		t.Fatalf("recently used entry must survive")
	}
}
