package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryTTL bounds every in-process entry. Workspaces and revocations, the
// longest lived keys, last at most one session token lifetime.
const memoryTTL = 25 * time.Hour

type memEntry struct {
	val     []byte
	expires time.Time
}

// memoryBackend serves single-instance deployments and tests. Entries
// shorter lived than memoryTTL carry their own deadline.
type memoryBackend struct {
	// mu makes take and incr atomic; the LRU is safe on its own otherwise.
	mu       sync.Mutex
	items    *expirable.LRU[string, memEntry]
	counters map[string]int64
	now      func() time.Time
}

func newMemoryBackend(now func() time.Time) *memoryBackend {
	return &memoryBackend{
		// size 0: revocations must never be evicted early
		items:    expirable.NewLRU[string, memEntry](0, nil, memoryTTL),
		counters: map[string]int64{},
		now:      now,
	}
}

func NewMemory() *Store {
	return &Store{b: newMemoryBackend(time.Now)}
}

func (m *memoryBackend) get(_ context.Context, key string) ([]byte, error) {
	return m.lookup(key)
}

func (m *memoryBackend) take(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, err := m.lookup(key)
	m.items.Remove(key)
	return val, err
}

func (m *memoryBackend) lookup(key string) ([]byte, error) {
	e, ok := m.items.Get(key)
	if !ok {
		return nil, errMiss
	}
	if m.now().After(e.expires) {
		m.items.Remove(key)
		return nil, errMiss
	}
	return e.val, nil
}

func (m *memoryBackend) set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > memoryTTL {
		ttl = memoryTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items.Add(key, memEntry{
		val:     append([]byte(nil), val...),
		expires: m.now().Add(ttl),
	})
	return nil
}

func (m *memoryBackend) del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items.Remove(key)
	return nil
}

func (m *memoryBackend) counter(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counters[key], nil
}

func (m *memoryBackend) incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[key]++
	return m.counters[key], nil
}
