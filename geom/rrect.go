package geom

import "math"

// Corner indexes RRect.Radii, clockwise from the upper left.
type Corner int

// RRect corners.
const (
	UpperLeft Corner = iota
	UpperRight
	LowerRight
	LowerLeft
)

// RRectType classifies a rounded rect.
type RRectType uint8

// RRect types, from simplest to most general.
const (
	RRectEmpty RRectType = iota
	RRectRect
	RRectOval
	RRectSimple
	RRectNinePatch
	RRectComplex
)

// RRect is a rectangle with an elliptical radius pair per corner.
type RRect struct {
	Rect  Rect
	Radii [4]Point
}

// RRectFromRect returns a rounded rect with square corners.
func RRectFromRect(r Rect) RRect {
	return RRect{Rect: r.Sorted()}
}

// RRectFromOval returns the rounded rect describing the ellipse inscribed in r.
func RRectFromOval(r Rect) RRect {
	r = r.Sorted()
	rad := Point{X: r.Width() / 2, Y: r.Height() / 2}
	return RRect{Rect: r, Radii: [4]Point{rad, rad, rad, rad}}
}

// RRectFromRectXY returns a rounded rect with the same radii at every corner.
func RRectFromRectXY(r Rect, rx, ry float64) RRect {
	rad := Point{X: rx, Y: ry}
	return RRectFromRadii(r, [4]Point{rad, rad, rad, rad})
}

// RRectFromRadii returns a rounded rect with per-corner radii. Negative radii
// are clamped to zero and radii that overlap are scaled down uniformly so
// adjacent corners fit along each side.
func RRectFromRadii(r Rect, radii [4]Point) RRect {
	r = r.Sorted()
	for i := range radii {
		radii[i].X = math.Max(radii[i].X, 0)
		radii[i].Y = math.Max(radii[i].Y, 0)
		if radii[i].X == 0 || radii[i].Y == 0 {
			radii[i] = Point{}
		}
	}
	scale := 1.0
	fit := func(limit, a, b float64) {
		if sum := a + b; sum > limit && sum > 0 {
			scale = math.Min(scale, limit/sum)
		}
	}
	fit(r.Width(), radii[UpperLeft].X, radii[UpperRight].X)
	fit(r.Height(), radii[UpperRight].Y, radii[LowerRight].Y)
	fit(r.Width(), radii[LowerRight].X, radii[LowerLeft].X)
	fit(r.Height(), radii[LowerLeft].Y, radii[UpperLeft].Y)
	if scale < 1 {
		for i := range radii {
			radii[i] = radii[i].Mul(scale)
		}
	}
	return RRect{Rect: r, Radii: radii}
}

// Type classifies the rounded rect.
func (rr RRect) Type() RRectType {
	if rr.Rect.IsEmpty() {
		return RRectEmpty
	}
	allZero, allEqual := true, true
	for _, r := range rr.Radii {
		if r != (Point{}) {
			allZero = false
		}
		if r != rr.Radii[0] {
			allEqual = false
		}
	}
	if allZero {
		return RRectRect
	}
	if allEqual {
		r := rr.Radii[0]
		if r.X >= rr.Rect.Width()/2 && r.Y >= rr.Rect.Height()/2 {
			return RRectOval
		}
		return RRectSimple
	}
	ul, ur, lr, ll := rr.Radii[UpperLeft], rr.Radii[UpperRight], rr.Radii[LowerRight], rr.Radii[LowerLeft]
	if ul.X == ll.X && ur.X == lr.X && ul.Y == ur.Y && ll.Y == lr.Y {
		return RRectNinePatch
	}
	return RRectComplex
}

// IsEmpty reports whether the bounds are empty.
func (rr RRect) IsEmpty() bool { return rr.Type() == RRectEmpty }

// IsRect reports whether every corner is square.
func (rr RRect) IsRect() bool { return rr.Type() == RRectRect }

// IsOval reports whether the rounded rect is an ellipse.
func (rr RRect) IsOval() bool { return rr.Type() == RRectOval }

// IsSimple reports whether all corners share one non-zero radius pair.
func (rr RRect) IsSimple() bool { return rr.Type() == RRectSimple }

// Bounds returns the enclosing rect.
func (rr RRect) Bounds() Rect { return rr.Rect }

// IsFinite reports whether the rect and radii are finite.
func (rr RRect) IsFinite() bool {
	if !rr.Rect.IsFinite() {
		return false
	}
	for _, r := range rr.Radii {
		if !r.IsFinite() {
			return false
		}
	}
	return true
}

// Offset translates the rounded rect.
func (rr RRect) Offset(dx, dy float64) RRect {
	rr.Rect = rr.Rect.Offset(dx, dy)
	return rr
}

// Transform maps the rounded rect by a scale+translate matrix. Mirrored axes
// swap the corner radii accordingly. It fails for any other matrix.
func (rr RRect) Transform(m Matrix) (RRect, bool) {
	if !m.IsScaleTranslate() || m.A == 0 || m.E == 0 {
		return RRect{}, false
	}
	out := RRect{Rect: m.MapRect(rr.Rect)}
	sx, sy := math.Abs(m.A), math.Abs(m.E)
	radii := rr.Radii
	if m.A < 0 {
		radii[UpperLeft], radii[UpperRight] = radii[UpperRight], radii[UpperLeft]
		radii[LowerLeft], radii[LowerRight] = radii[LowerRight], radii[LowerLeft]
	}
	if m.E < 0 {
		radii[UpperLeft], radii[LowerLeft] = radii[LowerLeft], radii[UpperLeft]
		radii[UpperRight], radii[LowerRight] = radii[LowerRight], radii[UpperRight]
	}
	for i := range radii {
		out.Radii[i] = Point{X: radii[i].X * sx, Y: radii[i].Y * sy}
	}
	if !out.IsFinite() {
		return RRect{}, false
	}
	return out, true
}

// Path returns the rounded rect as a clockwise closed path.
func (rr RRect) Path() *Path {
	p := NewPath()
	p.AddRRect(rr, Clockwise)
	return p
}
