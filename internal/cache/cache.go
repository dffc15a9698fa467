package cache

import (
	"sync"
	"time"
)

// Cache is a read-through store for values that are expensive to
// recompute, keyed by any comparable type.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Invalidate(key K)
}

type entry[V any] struct {
	value   V
	expires time.Time
}

// Memory is an in-process cache with per-entry expiry. Expired entries
// are evicted lazily on read.
type Memory[K comparable, V any] struct {
	mu   sync.Mutex
	data map[K]entry[V]
}

func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{data: make(map[K]entry[V])}
}

func (m *Memory[K, V]) Get(key K) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok {
		return zero, false
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		delete(m.data, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. A ttl of zero or less keeps the entry
// until it is invalidated.
func (m *Memory[K, V]) Set(key K, value V, ttl time.Duration) {
	if m == nil {
		return
	}
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
}

func (m *Memory[K, V]) Invalidate(key K) {
	if m == nil {
		return
	}
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
}

// Disabled satisfies Cache while caching nothing, for deployments that
// set the cache TTL to zero.
type Disabled[K comparable, V any] struct{}

func (Disabled[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

func (Disabled[K, V]) Set(key K, value V, ttl time.Duration) {}

func (Disabled[K, V]) Invalidate(key K) {}
