package maskcache

import (
	"bytes"
	"testing"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/mask"
)

func newTestMask(t *testing.T, bounds geom.IRect) (mask.Mask, *CachedData) {
	t.Helper()
	m := mask.New(bounds, mask.A8)
	data := NewCachedData(m.ComputeImageSize())
	buf := data.Data()
	for i := range buf {
		buf[i] = byte(i * 7)
	}
	m.Image = buf
	return m, data
}

func TestRRectRoundTrip(t *testing.T) {
	c := New(DefaultOptions())
	rr := geom.RRectFromRectXY(geom.RectLTRB(10.5, 20, 60, 80), 8, 8)
	m, data := newTestMask(t, geom.IRectLTRB(0, 0, 70, 80))
	want := append([]byte(nil), data.Data()...)

	c.AddRRect(3, pathcov.BlurNormal, rr, m, data)
	data.Unref()
	if got := data.RefCount(); got != 1 {
		t.Fatalf("cache should hold one reference, got %d", got)
	}

	found, got := c.FindAndRefRRect(3, pathcov.BlurNormal, rr)
	if found == nil {
		t.Fatal("FindAndRefRRect missed after AddRRect")
	}
	defer found.Unref()
	if got.Bounds != m.Bounds || got.RowBytes != m.RowBytes || got.Format != m.Format {
		t.Errorf("mask = %+v, want bounds %v rowBytes %d format %v", got, m.Bounds, m.RowBytes, m.Format)
	}
	if !bytes.Equal(got.Image[:len(want)], want) {
		t.Error("cached pixels differ from the stored ones")
	}
	if found.RefCount() != 2 {
		t.Errorf("RefCount = %d, want 2", found.RefCount())
	}
}

func TestRRectKeyIsExact(t *testing.T) {
	rr := geom.RRectFromRectXY(geom.RectLTRB(0, 0, 10, 10), 2, 2)
	moved := rr.Offset(1e-9, 0)
	if NewRRectKey(2, pathcov.BlurNormal, rr) == NewRRectKey(2, pathcov.BlurNormal, moved) {
		t.Error("rrect keys must compare geometry bit-exactly")
	}
	if NewRRectKey(2, pathcov.BlurNormal, rr) == NewRRectKey(2, pathcov.BlurSolid, rr) {
		t.Error("blur style must be part of the key")
	}
	if NewRRectKey(2, pathcov.BlurNormal, rr) == NewRRectKey(2.5, pathcov.BlurNormal, rr) {
		t.Error("sigma must be part of the key")
	}
}

func TestRectsKeyTranslationInvariant(t *testing.T) {
	outer := geom.RectLTRB(10.25, 20.5, 50.25, 70.5)
	inner := geom.RectLTRB(15.25, 25.5, 45.25, 65.5)

	k1, ok := NewRectsKey(4, pathcov.BlurNormal, []geom.Rect{outer, inner})
	if !ok {
		t.Fatal("NewRectsKey rejected two rects")
	}
	k2, _ := NewRectsKey(4, pathcov.BlurNormal, []geom.Rect{outer.Offset(100, -7), inner.Offset(100, -7)})
	if k1 != k2 {
		t.Error("integer translation changed the rects key")
	}

	k3, _ := NewRectsKey(4, pathcov.BlurNormal, []geom.Rect{outer.Offset(0.5, 0), inner.Offset(0.5, 0)})
	if k1 == k3 {
		t.Error("sub-pixel translation must change the rects key")
	}
	k4, _ := NewRectsKey(4, pathcov.BlurNormal, []geom.Rect{outer, inner.Offset(1, 0)})
	if k1 == k4 {
		t.Error("moving the inner rect must change the rects key")
	}
	single, _ := NewRectsKey(4, pathcov.BlurNormal, []geom.Rect{outer})
	if single == k1 {
		t.Error("one and two rect keys must differ")
	}
}

func TestRectsKeyInexactFractions(t *testing.T) {
	tests := []struct {
		name   string
		rects  []geom.Rect
		dx, dy float64
	}{
		{"single", []geom.Rect{geom.RectLTRB(0.3, 0.3, 10.3, 10.3)}, 1000, 1000},
		{"nested", []geom.Rect{geom.RectLTRB(0.1, 0.7, 40.1, 30.7), geom.RectLTRB(3.3, 4.9, 20.3, 11.9)}, 123456, -789},
		{"negative", []geom.Rect{geom.RectLTRB(-7.6, -2.2, 1.7, 5.9)}, -65536, 4097},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved := make([]geom.Rect, len(tt.rects))
			for i, r := range tt.rects {
				moved[i] = r.Offset(tt.dx, tt.dy)
			}
			k1, _ := NewRectsKey(3, pathcov.BlurNormal, tt.rects)
			k2, _ := NewRectsKey(3, pathcov.BlurNormal, moved)
			if k1 != k2 {
				t.Errorf("keys differ after translating by (%v, %v)", tt.dx, tt.dy)
			}
		})
	}
}

func TestRectsKeyRejectsCounts(t *testing.T) {
	r := geom.RectLTRB(0, 0, 1, 1)
	for _, rects := range [][]geom.Rect{nil, {r, r, r}} {
		if _, ok := NewRectsKey(1, pathcov.BlurNormal, rects); ok {
			t.Errorf("NewRectsKey accepted %d rects", len(rects))
		}
	}
	c := New(DefaultOptions())
	if d, _ := c.FindAndRefRects(1, pathcov.BlurNormal, nil); d != nil {
		t.Error("FindAndRefRects hit for an invalid key")
	}
}

func TestRectsSharedAcrossTranslation(t *testing.T) {
	c := New(DefaultOptions())
	r := geom.RectLTRB(3.5, 4.5, 20.5, 30.5)
	m, data := newTestMask(t, geom.IRectLTRB(0, 0, 30, 40))
	c.AddRects(2, pathcov.BlurOuter, []geom.Rect{r}, m, data)
	data.Unref()

	found, _ := c.FindAndRefRects(2, pathcov.BlurOuter, []geom.Rect{r.Offset(-3, 12)})
	if found == nil {
		t.Fatal("translated rect missed the cache")
	}
	found.Unref()
}

func TestPurgedEntryIsMiss(t *testing.T) {
	c := New(DefaultOptions())
	rr := geom.RRectFromOval(geom.RectLTRB(0, 0, 16, 16))
	m, data := newTestMask(t, geom.IRectLTRB(0, 0, 16, 16))
	c.AddRRect(1, pathcov.BlurInner, rr, m, data)

	if data.Purge() {
		t.Fatal("Purge succeeded while the caller still holds a reference")
	}
	data.Unref()
	if !data.Purge() {
		t.Fatal("Purge failed with only the cache reference")
	}
	if d, _ := c.FindAndRefRRect(1, pathcov.BlurInner, rr); d != nil {
		t.Error("purged entry reported as a hit")
	}
	if c.Len() != 0 {
		t.Errorf("purged entry still cached, Len = %d", c.Len())
	}
	if s := c.Stats(); s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
}

func TestEvictionReleasesData(t *testing.T) {
	c := New(Options{EntriesPerShard: 1})
	released := 0
	var all []*CachedData
	for i := range 64 {
		rr := geom.RRectFromRect(geom.RectXYWH(float64(i), 0, 4, 4))
		m, data := newTestMask(t, geom.IRectLTRB(0, 0, 4, 4))
		data.SetReleaseHook(func() { released++ })
		c.AddRRect(1, pathcov.BlurNormal, rr, m, data)
		data.Unref()
		all = append(all, data)
	}
	if c.Len() > 16 {
		t.Errorf("Len = %d, want at most one entry per shard", c.Len())
	}
	if released != 64-c.Len() {
		t.Errorf("released %d buffers, want %d", released, 64-c.Len())
	}
	c.Clear()
	if released != 64 {
		t.Errorf("Clear released %d buffers in total, want 64", released)
	}
	for i, d := range all {
		if d.Data() != nil {
			t.Errorf("buffer %d still allocated", i)
		}
	}
}

func TestLastWriteWins(t *testing.T) {
	c := New(DefaultOptions())
	rr := geom.RRectFromRect(geom.RectLTRB(0, 0, 8, 8))
	m1, d1 := newTestMask(t, geom.IRectLTRB(0, 0, 8, 8))
	m2, d2 := newTestMask(t, geom.IRectLTRB(1, 1, 9, 9))
	c.AddRRect(1, pathcov.BlurNormal, rr, m1, d1)
	c.AddRRect(1, pathcov.BlurNormal, rr, m2, d2)
	if d1.RefCount() != 1 {
		t.Errorf("replaced data should be unreferenced by the cache, RefCount = %d", d1.RefCount())
	}
	found, got := c.FindAndRefRRect(1, pathcov.BlurNormal, rr)
	if found != d2 || got.Bounds != m2.Bounds {
		t.Error("lookup did not return the latest entry")
	}
	found.Unref()
	d1.Unref()
	d2.Unref()
}
