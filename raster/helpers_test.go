package raster

import (
	"testing"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/mask"
)

// newMaskDraw returns a DrawBase with an identity CTM that accumulates into
// a zeroed w by h A8 mask.
func newMaskDraw(t *testing.T, w, h int) (*DrawBase, *mask.Mask) {
	t.Helper()
	m := mask.New(geom.IRectWH(w, h), mask.A8)
	m.Image = mask.AllocImage(m.ComputeImageSize())
	return &DrawBase{
		Clip:    geom.IRectWH(w, h),
		CTM:     geom.Identity(),
		Chooser: A8Chooser{Dst: &m},
	}, &m
}

func countCovered(m *mask.Mask) int {
	n := 0
	for _, v := range m.Image {
		if v != 0 {
			n++
		}
	}
	return n
}

func maxAlpha(m *mask.Mask) uint8 {
	var a uint8
	for _, v := range m.Image {
		a = max(a, v)
	}
	return a
}

func fillPaint(aa bool) *pathcov.Paint {
	p := pathcov.NewPaint()
	p.AntiAlias = aa
	return p
}

func strokePaint(width float64, aa bool) *pathcov.Paint {
	p := pathcov.NewPaint()
	p.Style = pathcov.StyleStroke
	p.StrokeWidth = width
	p.AntiAlias = aa
	return p
}

func rectPath(r geom.Rect) *geom.Path {
	p := geom.NewPath()
	p.AddRect(r, geom.Clockwise)
	return p
}

// solidFilter is a mask filter that turns the source mask bounds into full
// coverage. Its margin and the result of its shape fast paths are
// configurable.
type solidFilter struct {
	margin geom.IPoint
	value  uint8

	rectsResult pathcov.FilterResult
	rectsCalls  int
}

func (f *solidFilter) Format() mask.Format { return mask.A8 }

func (f *solidFilter) FilterMask(dst *mask.Builder, src mask.Mask, _ geom.Matrix, margin *geom.IPoint) bool {
	if margin != nil {
		*margin = f.margin
	}
	dst.SetBounds(src.Bounds.Outset(f.margin.X, f.margin.Y), mask.A8)
	if src.Image == nil {
		return true
	}
	if err := dst.AllocImage(); err != nil {
		return false
	}
	for i := range dst.Image() {
		dst.Image()[i] = f.value
	}
	return true
}

// solidMask returns a filtered mask covering bounds with f.value.
func (f *solidFilter) solidMask(bounds geom.IRect) pathcov.FilteredMask {
	b := mask.NewBuilder(bounds, mask.A8)
	if err := b.AllocImage(); err != nil {
		panic(err)
	}
	for i := range b.Image() {
		b.Image()[i] = f.value
	}
	return pathcov.NewFilteredMask(b.Finalize(), nil)
}

// rectsFilter adds the rects fast path to solidFilter.
type rectsFilter struct{ solidFilter }

func (f *rectsFilter) FilterRects(rects []geom.Rect, _ geom.Matrix, _ geom.IRect) (pathcov.FilteredMask, pathcov.FilterResult) {
	f.rectsCalls++
	if f.rectsResult != pathcov.FilterTrue {
		return pathcov.FilteredMask{}, f.rectsResult
	}
	return f.solidMask(rects[0].Round()), pathcov.FilterTrue
}

// rrectFilter adds the rrect fast path to solidFilter.
type rrectFilter struct {
	solidFilter
	result pathcov.FilterResult
	calls  int
}

func (f *rrectFilter) FilterRRect(rr geom.RRect, _ geom.Matrix, _ geom.IRect) (pathcov.FilteredMask, pathcov.FilterResult) {
	f.calls++
	if f.result != pathcov.FilterTrue {
		return pathcov.FilteredMask{}, f.result
	}
	return f.solidMask(rr.Rect.RoundOut()), pathcov.FilterTrue
}
