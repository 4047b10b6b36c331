// Package maskcache caches blurred coverage masks of rounded rects and of one
// or two nested rects.
//
// Cached masks live in reference-counted CachedData buffers. A lookup returns
// a referenced buffer that stays valid until the caller calls Unref, even if
// the entry is evicted meanwhile. Entries whose buffers have been purged are
// dropped on lookup and reported as misses.
package maskcache

import (
	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/cache"
	"github.com/gogpu/pathcov/mask"
)

// Options configures a Cache.
type Options struct {
	// EntriesPerShard bounds each of the cache's shards.
	EntriesPerShard int
}

// DefaultOptions returns the default cache configuration.
func DefaultOptions() Options {
	return Options{EntriesPerShard: cache.DefaultCapacity}
}

// Stats holds cache counters.
type Stats = cache.Stats

type entry struct {
	mask mask.Mask
	data *CachedData
}

// Cache maps Keys to cached masks. It is safe for concurrent use.
type Cache struct {
	entries *cache.Sharded[Key, entry]
}

// New returns an empty cache.
func New(opts Options) *Cache {
	return &Cache{
		entries: cache.NewSharded[Key, entry](opts.EntriesPerShard, cache.ComparableHasher[Key](),
			func(_ Key, e entry) { e.data.Unref() }),
	}
}

// FindAndRef looks up key. On a hit it returns a referenced CachedData and a
// mask whose image points into it; the caller must Unref the data when done
// with the mask. On a miss the data is nil.
func (c *Cache) FindAndRef(key Key) (*CachedData, mask.Mask) {
	var found entry
	ok := c.entries.Visit(key, func(e entry) bool {
		if !e.data.refIfValid() {
			return false
		}
		found = e
		return true
	})
	if !ok {
		return nil, mask.Mask{}
	}
	m := found.mask
	m.Image = found.data.Data()
	return found.data, m
}

// Add stores m under key. The cache takes its own reference on data; m's
// image must live inside data. A later Add for the same key replaces it.
func (c *Cache) Add(key Key, m mask.Mask, data *CachedData) {
	data.Ref()
	m.Image = nil
	c.entries.Set(key, entry{mask: m, data: data})
	pathcov.Logger().Debug("maskcache: add", "bounds", m.Bounds, "bytes", len(data.Data()))
}

// FindAndRefRRect is FindAndRef for a rounded rect key.
func (c *Cache) FindAndRefRRect(sigma float32, style pathcov.BlurStyle, rr geom.RRect) (*CachedData, mask.Mask) {
	return c.FindAndRef(NewRRectKey(sigma, style, rr))
}

// AddRRect is Add for a rounded rect key.
func (c *Cache) AddRRect(sigma float32, style pathcov.BlurStyle, rr geom.RRect, m mask.Mask, data *CachedData) {
	c.Add(NewRRectKey(sigma, style, rr), m, data)
}

// FindAndRefRects is FindAndRef for a rects key. It misses for unsupported
// rect counts.
func (c *Cache) FindAndRefRects(sigma float32, style pathcov.BlurStyle, rects []geom.Rect) (*CachedData, mask.Mask) {
	k, ok := NewRectsKey(sigma, style, rects)
	if !ok {
		return nil, mask.Mask{}
	}
	return c.FindAndRef(k)
}

// AddRects is Add for a rects key. Unsupported rect counts are ignored.
func (c *Cache) AddRects(sigma float32, style pathcov.BlurStyle, rects []geom.Rect, m mask.Mask, data *CachedData) {
	if k, ok := NewRectsKey(sigma, style, rects); ok {
		c.Add(k, m, data)
	}
}

// Len returns the number of cached masks.
func (c *Cache) Len() int { return c.entries.Len() }

// Stats returns hit, miss and eviction counters.
func (c *Cache) Stats() Stats { return c.entries.Stats() }

// Clear drops every entry and the cache's references.
func (c *Cache) Clear() { c.entries.Clear() }
