// Package cmap contains a thread-safe concurrent awaitable map.
// It is optimised for large maps (e.g. hundreds of thousands of build targets) that are read
// from many goroutines at once; for smaller maps another implementation may do better.
//
// It is also specifically useful where a caller wants exactly one goroutine to compute a value
// while any others asking for the same key wait for it, rather than all computing it at once.
package cmap

import (
	"fmt"
	"sync"
)

// DefaultShardCount is a reasonable default shard count for large maps.
const DefaultShardCount = 1 << 8

// A Map is the top-level map type. All functions on it are threadsafe.
// It should be constructed via New() rather than creating an instance directly.
type Map[K comparable, V any] struct {
	shards []shard[K, V]
	hasher func(K) uint64
	mask   uint64
}

// New creates a new Map using the given hasher to hash items in it.
// The shard count must be a power of 2; it will panic if not.
// Higher shard counts will improve concurrency but consume more memory.
func New[K comparable, V any](shardCount uint64, hasher func(K) uint64) *Map[K, V] {
	mask := shardCount - 1
	if shardCount == 0 || (shardCount&mask) != 0 {
		panic(fmt.Sprintf("Shard count %d is not a power of 2", shardCount))
	}
	m := &Map[K, V]{
		shards: make([]shard[K, V], shardCount),
		mask:   mask,
		hasher: hasher,
	}
	for i := range m.shards {
		m.shards[i].m = map[K]awaitableValue[V]{}
	}
	return m
}

// Set is the equivalent of `map[key] = val`.
// It always overwrites any key that existed before.
func (m *Map[K, V]) Set(key K, val V) {
	m.shard(key).Set(key, val)
}

// Get returns the value corresponding to the given key, or its zero value if
// the key doesn't exist in the map.
func (m *Map[K, V]) Get(key K) V {
	v, _ := m.GetOK(key)
	return v
}

// GetOK returns the value corresponding to the given key and true, or the zero value and false
// if the key doesn't exist (or is only being waited on).
func (m *Map[K, V]) GetOK(key K) (V, bool) {
	return m.shard(key).Get(key)
}

// GetOrWait returns the value or, if the key isn't present, a channel that it can be waited
// on for. The caller will need to call Get again after the channel closes.
// The third return value is true if this is the first call that is awaiting this key; that caller
// is then responsible for calling Set. It's always false if the key exists.
func (m *Map[K, V]) GetOrWait(key K) (val V, wait <-chan struct{}, first bool) {
	return m.shard(key).GetOrWait(key)
}

// Len returns the number of values present in the map (not counting keys that are only awaited).
func (m *Map[K, V]) Len() int {
	n := 0
	for i := range m.shards {
		n += m.shards[i].Len()
	}
	return n
}

func (m *Map[K, V]) shard(key K) *shard[K, V] {
	return &m.shards[m.hasher(key)&m.mask]
}

// An awaitableValue represents a value in the map & an awaitable channel for it to exist.
type awaitableValue[V any] struct {
	Val  V
	Wait chan struct{}
}

// A shard is one of the individual shards of a map.
type shard[K comparable, V any] struct {
	m map[K]awaitableValue[V]
	l sync.Mutex
}

// Set inserts the value, waking anything waiting on it.
func (s *shard[K, V]) Set(key K, val V) {
	s.l.Lock()
	defer s.l.Unlock()
	existing, present := s.m[key]
	s.m[key] = awaitableValue[V]{Val: val}
	if present && existing.Wait != nil {
		close(existing.Wait)
	}
}

// Get returns the value for a key if it has been set.
func (s *shard[K, V]) Get(key K) (V, bool) {
	s.l.Lock()
	defer s.l.Unlock()
	if v, ok := s.m[key]; ok && v.Wait == nil {
		return v.Val, true
	}
	var zero V
	return zero, false
}

// GetOrWait returns the value for a key or, if not present, a channel that it can be waited on for.
// Exactly one of the value or channel will be returned.
func (s *shard[K, V]) GetOrWait(key K) (val V, wait <-chan struct{}, first bool) {
	s.l.Lock()
	defer s.l.Unlock()
	if v, ok := s.m[key]; ok {
		return v.Val, v.Wait, false
	}
	ch := make(chan struct{})
	s.m[key] = awaitableValue[V]{Wait: ch}
	return val, ch, true
}

func (s *shard[K, V]) Len() int {
	s.l.Lock()
	defer s.l.Unlock()
	n := 0
	for _, v := range s.m {
		if v.Wait == nil {
			n++
		}
	}
	return n
}
