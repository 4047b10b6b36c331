package cache

import (
	"hash/maphash"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. It must be a power of two.
	ShardCount = 16

	// DefaultCapacity is the default number of entries per shard.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Hasher maps a key to a shard-selection hash.
type Hasher[K any] func(K) uint64

// ComparableHasher returns a Hasher for any comparable key using a
// process-random seed.
func ComparableHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(k K) uint64 { return maphash.Comparable(seed, k) }
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Sharded is a thread-safe LRU map split across ShardCount shards.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int
	onEvict  func(K, V)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	lru     lruList[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

type evicted[K comparable, V any] struct {
	key   K
	value V
}

// NewSharded returns a cache holding up to capacity entries per shard.
// capacity <= 0 selects DefaultCapacity. onEvict may be nil.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K], onEvict func(K, V)) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity, onEvict: onEvict}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*entry[K, V])
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

func (c *Sharded[K, V]) notify(out []evicted[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range out {
		c.onEvict(e.key, e.value)
	}
}

// Visit looks up key and, on a hit, calls fn with the value while the shard
// is locked. fn returns false to reject a stale entry, which is then removed
// as a miss. Visit reports whether fn accepted a value.
func (c *Sharded[K, V]) Visit(key K, fn func(V) bool) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		return false
	}
	if !fn(e.value) {
		s.lru.unlink(e.node)
		delete(s.entries, key)
		s.mu.Unlock()
		c.misses.Add(1)
		c.evictions.Add(1)
		c.notify([]evicted[K, V]{{key, e.value}})
		return false
	}
	s.lru.moveToFront(e.node)
	s.mu.Unlock()
	c.hits.Add(1)
	return true
}

// Get returns the value for key and marks it most recently used.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	var out V
	ok := c.Visit(key, func(v V) bool {
		out = v
		return true
	})
	return out, ok
}

// Set stores value under key, evicting the least recently used entries of the
// shard when it is full. A replaced value is passed to the eviction callback.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	var out []evicted[K, V]

	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		out = append(out, evicted[K, V]{key, e.value})
		e.value = value
		s.lru.moveToFront(e.node)
		s.mu.Unlock()
		c.notify(out)
		return
	}
	for s.lru.len >= c.capacity {
		oldest, ok := s.lru.removeOldest()
		if !ok {
			break
		}
		out = append(out, evicted[K, V]{oldest, s.entries[oldest].value})
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	s.entries[key] = &entry[K, V]{value: value, node: s.lru.pushFront(key)}
	s.mu.Unlock()

	c.notify(out)
}

// Delete removes key and reports whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		s.lru.unlink(e.node)
		delete(s.entries, key)
	}
	s.mu.Unlock()
	if ok {
		c.notify([]evicted[K, V]{{key, e.value}})
	}
	return ok
}

// Clear removes every entry.
func (c *Sharded[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		out := make([]evicted[K, V], 0, len(s.entries))
		for k, e := range s.entries {
			out = append(out, evicted[K, V]{k, e.value})
		}
		s.entries = make(map[K]*entry[K, V])
		s.lru = lruList[K]{}
		s.mu.Unlock()
		c.notify(out)
	}
}

// Len returns the number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Stats returns the current counters.
func (c *Sharded[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
