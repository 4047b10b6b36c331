package raster

import (
	"math"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
)

// RectType is the rasterization route for a rect.
type RectType uint8

const (
	// RectHair draws a one pixel wide outline.
	RectHair RectType = iota
	// RectFill fills the rect.
	RectFill
	// RectStroke draws a mitered frame of a given device stroke size.
	RectStroke
	// RectPath converts the rect to a path.
	RectPath
)

// String returns the type name.
func (t RectType) String() string {
	switch t {
	case RectHair:
		return "Hair"
	case RectFill:
		return "Fill"
	case RectStroke:
		return "Stroke"
	case RectPath:
		return "Path"
	default:
		return "RectType(?)"
	}
}

// ComputeRectType picks how rect drawn with p under m is rasterized. For
// RectStroke, strokeSize is the device size of the stroke along x and y.
func ComputeRectType(rect geom.Rect, p *pathcov.Paint, m geom.Matrix) (rtype RectType, strokeSize geom.Point) {
	width := p.StrokeWidth
	switch {
	case p.PathEffect != nil || p.MaskFilter != nil || !m.RectStaysRect():
		return RectPath, geom.Point{}
	case p.Style == pathcov.StyleFill:
		return RectFill, geom.Point{}
	case p.Style == pathcov.StyleStrokeAndFill:
		if width == 0 {
			return RectFill, geom.Point{}
		}
		return RectPath, geom.Point{}
	case width == 0:
		return RectHair, geom.Point{}
	}
	if p.Join != pathcov.JoinMiter || p.MiterLimit < math.Sqrt2 || rect.Sorted().IsEmpty() {
		return RectPath, geom.Point{}
	}
	v := m.MapVector(geom.Pt(width, width))
	return RectStroke, geom.Pt(math.Abs(v.X), math.Abs(v.Y))
}

// TreatAsHairline reports whether a stroke drawn with p under m is thin
// enough to draw as a hairline, and the coverage that stands in for its
// width. A zero width stroke is always a hairline with full coverage.
// Otherwise the paint must be antialiased, m must be affine, and the width
// mapped along both axes must be at most one pixel.
func TreatAsHairline(p *pathcov.Paint, m geom.Matrix) (coverage float64, ok bool) {
	if p.Style != pathcov.StyleStroke {
		return 0, false
	}
	w := p.StrokeWidth
	if w == 0 {
		return 1, true
	}
	if !p.AntiAlias || m.HasPerspective() {
		return 0, false
	}
	lx := fastLen(m.MapVector(geom.Pt(w, 0)))
	ly := fastLen(m.MapVector(geom.Pt(0, w)))
	if lx <= 1 && ly <= 1 {
		return (lx + ly) / 2, true
	}
	return 0, false
}

// fastLen approximates the length of v by the larger component plus half
// the smaller one.
func fastLen(v geom.Point) float64 {
	x, y := math.Abs(v.X), math.Abs(v.Y)
	if x < y {
		x, y = y, x
	}
	return x + y/2
}

// modulateAlpha scales alpha by coverage the way hairline paints always
// have: coverage is truncated to 1/256 steps.
func modulateAlpha(alpha uint8, coverage float64) uint8 {
	scale := int(coverage * 256)
	return uint8(int(alpha) * scale >> 8)
}
