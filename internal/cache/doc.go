// Package cache provides a sharded, thread-safe LRU map used for caching
// rendered coverage masks.
//
// Entries are spread over a fixed number of shards by key hash, each with its
// own lock and LRU list. An eviction callback observes every value that leaves
// the cache (capacity eviction, replacement, deletion or Clear) and runs after
// the shard lock is released, so it may call back into the cache.
package cache
