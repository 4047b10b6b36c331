package maskfilter

import (
	"bytes"
	"testing"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/maskcache"
)

var testClip = geom.IRectWH(100, 100)

func TestFilterRRect(t *testing.T) {
	b := NewBlur(pathcov.BlurNormal, 2, false)
	rr := geom.RRectFromRectXY(geom.RectLTRB(10, 10, 30, 30), 4, 4)
	fm, res := b.FilterRRect(rr, geom.Identity(), testClip)
	if res != pathcov.FilterTrue {
		t.Fatalf("result = %v, want FilterTrue", res)
	}
	defer fm.Release()
	if got, want := fm.Mask.Bounds, geom.IRectLTRB(4, 4, 36, 36); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if got := fm.Mask.AlphaAt(20, 20); got != 0xFF {
		t.Errorf("center = %d, want 255", got)
	}
	corner, side := fm.Mask.AlphaAt(10, 10), fm.Mask.AlphaAt(10, 20)
	if corner >= side {
		t.Errorf("rounded corner %d not lighter than the side %d", corner, side)
	}
}

func TestFilterRRectRejects(t *testing.T) {
	b := NewBlur(pathcov.BlurNormal, 2, false)
	tests := []struct {
		name string
		blur *Blur
		rect geom.Rect
		want pathcov.FilterResult
	}{
		{"outside clip", b, geom.RectLTRB(200, 200, 210, 210), pathcov.FilterFalse},
		{"too large", b, geom.RectLTRB(0, 0, 3000, 3000), pathcov.FilterUnimplemented},
		{"zero sigma", &Blur{}, geom.RectLTRB(10, 10, 20, 20), pathcov.FilterUnimplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := geom.RRectFromRectXY(tt.rect, 2, 2)
			if _, res := tt.blur.FilterRRect(rr, geom.Identity(), testClip); res != tt.want {
				t.Errorf("result = %v, want %v", res, tt.want)
			}
		})
	}
}

func TestFilterRectsNested(t *testing.T) {
	b := NewBlur(pathcov.BlurNormal, 1, false)
	rects := []geom.Rect{geom.RectLTRB(10, 10, 40, 40), geom.RectLTRB(20, 20, 30, 30)}
	fm, res := b.FilterRects(rects, geom.Identity(), testClip)
	if res != pathcov.FilterTrue {
		t.Fatalf("result = %v, want FilterTrue", res)
	}
	defer fm.Release()
	if got, want := fm.Mask.Bounds, geom.IRectLTRB(7, 7, 43, 43); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if got := fm.Mask.AlphaAt(25, 25); got != 0 {
		t.Errorf("hole = %d, want 0", got)
	}
	if got := fm.Mask.AlphaAt(15, 25); got != 0xFF {
		t.Errorf("frame = %d, want 255", got)
	}
}

func TestFilterRectsCounts(t *testing.T) {
	b := NewBlur(pathcov.BlurNormal, 1, false)
	r := geom.RectLTRB(0, 0, 4, 4)
	for _, rects := range [][]geom.Rect{nil, {r, r, r}} {
		if _, res := b.FilterRects(rects, geom.Identity(), testClip); res != pathcov.FilterUnimplemented {
			t.Errorf("%d rects: result = %v, want FilterUnimplemented", len(rects), res)
		}
	}
}

func TestFilterRRectCached(t *testing.T) {
	c := maskcache.New(maskcache.DefaultOptions())
	b := NewBlur(pathcov.BlurNormal, 2, false).WithCache(c)
	rr := geom.RRectFromRectXY(geom.RectLTRB(10, 10, 30, 30), 4, 4)

	first, _ := b.FilterRRect(rr, geom.Identity(), testClip)
	second, res := b.FilterRRect(rr, geom.Identity(), testClip)
	if res != pathcov.FilterTrue {
		t.Fatalf("result = %v, want FilterTrue", res)
	}
	if c.Len() != 1 {
		t.Errorf("cache len = %d, want 1", c.Len())
	}
	if &first.Mask.Image[0] != &second.Mask.Image[0] {
		t.Error("second lookup did not reuse the cached image")
	}
	if first.Mask.Bounds != second.Mask.Bounds {
		t.Errorf("bounds %v != %v", first.Mask.Bounds, second.Mask.Bounds)
	}
	first.Release()
	second.Release()
	if c.Len() != 1 {
		t.Error("releasing the masks evicted the entry")
	}
}

func TestFilterRectsCachedTranslated(t *testing.T) {
	c := maskcache.New(maskcache.DefaultOptions())
	b := NewBlur(pathcov.BlurNormal, 1, false).WithCache(c)

	r := geom.RectLTRB(10.5, 10, 20.5, 20)
	first, _ := b.FilterRects([]geom.Rect{r}, geom.Identity(), testClip)
	defer first.Release()
	want := append([]byte(nil), first.Mask.Image...)

	second, res := b.FilterRects([]geom.Rect{r.Offset(20, 30)}, geom.Identity(), testClip)
	if res != pathcov.FilterTrue {
		t.Fatalf("result = %v, want FilterTrue", res)
	}
	defer second.Release()
	if c.Len() != 1 {
		t.Errorf("cache len = %d, want 1", c.Len())
	}
	if got, want := first.Mask.Bounds, geom.IRectLTRB(7, 7, 24, 23); got != want {
		t.Errorf("first bounds = %v, want %v", got, want)
	}
	if got, want := second.Mask.Bounds, geom.IRectLTRB(27, 37, 44, 53); got != want {
		t.Errorf("second bounds = %v, want %v", got, want)
	}
	if !bytes.Equal(second.Mask.Image, want) {
		t.Error("translated rects got different pixels")
	}
}
