package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long memoized provider and moon results stay valid.
const DefaultTTL = time.Hour

type entry[V any] struct {
	value     V
	expiresAt time.Time
	insertIdx int64
}

// Memo is a time-boxed memoization table. Expired entries are never served;
// they are dropped lazily on access or when capacity forces an eviction.
// Thread-safe.
type Memo[K comparable, V any] struct {
	mu         sync.Mutex
	items      map[K]entry[V]
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

// New creates a Memo. maxEntries <= 0 means unbounded.
func New[K comparable, V any](ttl time.Duration, maxEntries int) *Memo[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memo[K, V]{
		items:      make(map[K]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (m *Memo[K, V]) WithClock(now func() time.Time) *Memo[K, V] {
	m.now = now
	return m
}

// TTL returns the validity window of an entry.
func (m *Memo[K, V]) TTL() time.Duration { return m.ttl }

// Get returns the value for key if present and not expired.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting the oldest entry when full.
func (m *Memo[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry[V]{value: value, expiresAt: m.now().Add(m.ttl), insertIdx: m.nextIdx}
	m.nextIdx++

	if _, exists := m.items[key]; !exists && m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		m.evictOldest()
	}
	m.items[key] = e
}

// GetOrCompute returns the memoized value for key, calling compute on a miss.
// Errors are returned as-is and never memoized.
func (m *Memo[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, bool, error) {
	if v, ok := m.Get(key); ok {
		return v, true, nil
	}
	v, err := compute()
	if err != nil {
		return v, false, err
	}
	m.Set(key, v)
	return v, false, nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Clear removes every entry.
func (m *Memo[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[K]entry[V])
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (m *Memo[K, V]) evictOldest() {
	var oldestKey K
	var oldestIdx int64 = -1
	for k, e := range m.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = k
		}
	}
	if oldestIdx != -1 {
		delete(m.items, oldestKey)
	}
}
