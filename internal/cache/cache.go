// Package cache stores serialised evaluation results keyed by a hash of the
// canonical request, so identical requests to the server are answered once.
package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// Cache is a byte store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key derives a cache key from a canonical request encoding.
func Key(namespace string, canonical []byte) string {
	return namespace + ":" + strconv.FormatUint(xxhash.Sum64(canonical), 16)
}

type entry struct {
	value   []byte
	stored  time.Time
	expires time.Time
}

// Memory is an in-process cache guarded by a mutex. Expired entries are
// swept on Set at most once per ttl, and the oldest entry is evicted once
// maxEntries is reached.
type Memory struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]entry
	lastSweep  time.Time
	now        func() time.Time
}

// NewMemory returns an empty in-process cache holding at most
// constants.DefaultCacheMaxEntries entries. A ttl of zero never expires.
func NewMemory(ttl time.Duration) *Memory {
	return NewMemoryWithLimit(ttl, constants.DefaultCacheMaxEntries)
}

// NewMemoryWithLimit is NewMemory with an explicit entry limit. A limit of
// zero or less is unbounded.
func NewMemoryWithLimit(ttl time.Duration, maxEntries int) *Memory {
	return &Memory{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]entry),
		now:        time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.ttl > 0 && now.Sub(m.lastSweep) >= m.ttl {
		m.sweep(now)
	}
	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.sweep(now)
		if len(m.entries) >= m.maxEntries {
			m.evictOldest()
		}
	}

	e := entry{value: append([]byte(nil), value...), stored: now}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	m.entries[key] = e
	return nil
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// sweep drops every expired entry. The caller holds mu.
func (m *Memory) sweep(now time.Time) {
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
	m.lastSweep = now
}

// evictOldest drops the least recently stored entry. The caller holds mu.
func (m *Memory) evictOldest() {
	var oldestKey string
	var oldest time.Time
	found := false
	for k, e := range m.entries {
		if !found || e.stored.Before(oldest) {
			oldestKey, oldest, found = k, e.stored, true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close releases nothing; it satisfies Cache.
func (m *Memory) Close() error {
	return nil
}

// Redis stores entries in a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: rdb, ttl: ttl}
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get returns the value for key if present.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores value under key with the configured expiry.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Close closes the client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
