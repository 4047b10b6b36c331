package maskcache

import (
	"sync"

	"github.com/gogpu/pathcov/mask"
)

// CachedData is a reference-counted byte buffer whose backing store can be
// purged while only the cache holds it. Once purged, Data returns nil and
// the owning cache entry is treated as a miss.
type CachedData struct {
	mu        sync.Mutex
	refs      int
	data      []byte
	onRelease func()
}

// NewCachedData allocates a zeroed buffer of size bytes. The caller owns the
// initial reference.
func NewCachedData(size int) *CachedData {
	return &CachedData{refs: 1, data: mask.AllocImage(size)}
}

// NewCachedDataFrom adopts buf. The caller owns the initial reference and
// must not use buf after the last Unref.
func NewCachedDataFrom(buf []byte) *CachedData {
	return &CachedData{refs: 1, data: buf}
}

// SetReleaseHook registers fn to run when the last reference is dropped.
func (d *CachedData) SetReleaseHook(fn func()) {
	d.mu.Lock()
	d.onRelease = fn
	d.mu.Unlock()
}

// Ref adds a reference.
func (d *CachedData) Ref() {
	d.mu.Lock()
	d.refs++
	d.mu.Unlock()
}

// refIfValid adds a reference unless the backing store was purged.
func (d *CachedData) refIfValid() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data == nil {
		return false
	}
	d.refs++
	return true
}

// Unref drops a reference. The last one frees the backing store.
func (d *CachedData) Unref() {
	d.mu.Lock()
	d.refs--
	if d.refs > 0 {
		d.mu.Unlock()
		return
	}
	mask.FreeImage(&d.data)
	hook := d.onRelease
	d.onRelease = nil
	d.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// RefCount returns the current number of references.
func (d *CachedData) RefCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refs
}

// Data returns the buffer, or nil once purged or released.
func (d *CachedData) Data() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}

// Purge drops the backing store if no more than one reference (the cache's)
// is held, and reports whether it did.
func (d *CachedData) Purge() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs > 1 || d.data == nil {
		return false
	}
	mask.FreeImage(&d.data)
	return true
}
