// Package cache memoizes results by argument value for the lifetime of a session.
package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo maps a key to the first successful result computed for it. Failed loads
// are not stored, so the next call for the key tries again. Concurrent loads of
// one key share a single call.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
	flight  singleflight.Group
	keyFn   func(K) string
}

// New returns an empty Memo. keyFn must map distinct keys to distinct strings;
// it is only used to coalesce in-flight loads.
func New[K comparable, V any](keyFn func(K) string) *Memo[K, V] {
	return &Memo[K, V]{
		entries: map[K]V{},
		keyFn:   keyFn,
	}
}

// Get returns the stored value for key, calling load when there is none.
func (m *Memo[K, V]) Get(key K, load func() (V, error)) (V, error) {
	if v, ok := m.lookup(key); ok {
		return v, nil
	}

	res, err, _ := m.flight.Do(m.keyFn(key), func() (any, error) {
		if v, ok := m.lookup(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.entries[key] = v
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Len reports how many keys hold a value.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memo[K, V]) lookup(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}
