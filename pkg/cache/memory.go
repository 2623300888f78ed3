package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	value      interface{}
	expiresAt  time.Time
	lastAccess time.Time
}

func (e *entry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// MemoryCache implements Service using in-memory storage with LRU eviction.
type MemoryCache struct {
	mu      sync.Mutex
	data    map[string]*entry
	maxSize int
	janitor *time.Ticker
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		data:    make(map[string]*entry),
		maxSize: cfg.MaxSize,
		janitor: time.NewTicker(cfg.CleanupInterval),
	}
	go mc.sweep()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.data) >= mc.maxSize {
		mc.evictOldest()
	}

	expiresAt := time.Now().Add(expiration)
	if expiration <= 0 {
		expiresAt = time.Now().Add(7 * 24 * time.Hour)
	}

	now := time.Now()
	mc.data[key] = &entry{value: value, expiresAt: expiresAt, lastAccess: now}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	e, ok := mc.data[key]
	if !ok || e.expired() {
		if ok {
			delete(mc.data, key)
		}
		return ErrCacheMiss
	}
	e.lastAccess = time.Now()

	if strPtr, ok := dest.(*string); ok {
		if s, ok := e.value.(string); ok {
			*strPtr = s
			return nil
		}
	}

	// Typed destinations go through a JSON round trip so callers see the
	// same semantics the Redis backend has.
	raw, err := json.Marshal(e.value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, key := range keys {
		if e, ok := mc.data[key]; ok && !e.expired() {
			return true, nil
		}
	}
	return false, nil
}

// evictOldest drops the least recently accessed entry. Caller holds the lock.
func (mc *MemoryCache) evictOldest() {
	var oldestKey string
	oldest := time.Now()
	for key, e := range mc.data {
		if e.lastAccess.Before(oldest) {
			oldest = e.lastAccess
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(mc.data, oldestKey)
	}
}

func (mc *MemoryCache) sweep() {
	for range mc.janitor.C {
		mc.mu.Lock()
		for key, e := range mc.data {
			if e.expired() {
				delete(mc.data, key)
			}
		}
		mc.mu.Unlock()
	}
}

// Close stops the expiry sweeper.
func (mc *MemoryCache) Close() error {
	if mc.janitor != nil {
		mc.janitor.Stop()
	}
	return nil
}
