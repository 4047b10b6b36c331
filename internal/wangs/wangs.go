// Package wangs evaluates Wang's formula: the number of uniform parametric
// segments a Bezier or conic needs so that its linearization stays within
// 1/precision of the true curve.
//
// The *Pow4 and *Pow2 variants return the segment count raised to that power
// so callers can compare against thresholds without roots.
package wangs

import (
	"math"

	"github.com/gogpu/pathcov/geom"
)

// Precision is the default tolerance denominator: a maximum deviation of
// a quarter pixel.
const Precision = 4.0

// MaxSegments bounds the segment count of any single curve.
const MaxSegments = 1 << 10

// length term for degree n: n*(n-1)/8.
const (
	quadLengthTerm  = 2.0 * 1 / 8
	cubicLengthTerm = 3.0 * 2 / 8
)

// QuadraticPow4 returns n^4 for a quadratic.
func QuadraticPow4(precision float64, p0, p1, p2 geom.Point) float64 {
	v := p0.Sub(p1.Mul(2)).Add(p2).Mul(quadLengthTerm * precision)
	return v.LengthSquared()
}

// Quadratic returns the (fractional) segment count for a quadratic.
func Quadratic(precision float64, p0, p1, p2 geom.Point) float64 {
	return math.Sqrt(math.Sqrt(QuadraticPow4(precision, p0, p1, p2)))
}

// CubicPow4 returns n^4 for a cubic.
func CubicPow4(precision float64, p0, p1, p2, p3 geom.Point) float64 {
	v1 := p0.Sub(p1.Mul(2)).Add(p2)
	v2 := p1.Sub(p2.Mul(2)).Add(p3)
	m := math.Max(v1.LengthSquared(), v2.LengthSquared())
	lt := cubicLengthTerm * precision
	return m * lt * lt
}

// Cubic returns the (fractional) segment count for a cubic.
func Cubic(precision float64, p0, p1, p2, p3 geom.Point) float64 {
	return math.Sqrt(math.Sqrt(CubicPow4(precision, p0, p1, p2, p3)))
}

// ConicPow2 returns n^2 for a conic with weight w.
func ConicPow2(precision float64, p0, p1, p2 geom.Point, w float64) float64 {
	// Translate to the bounding box center to keep the error bound tight.
	lo := geom.Pt(math.Min(math.Min(p0.X, p1.X), p2.X), math.Min(math.Min(p0.Y, p1.Y), p2.Y))
	hi := geom.Pt(math.Max(math.Max(p0.X, p1.X), p2.X), math.Max(math.Max(p0.Y, p1.Y), p2.Y))
	c := lo.Add(hi).Mul(0.5)
	p0, p1, p2 = p0.Sub(c), p1.Sub(c), p2.Sub(c)

	maxLen := math.Sqrt(math.Max(p0.LengthSquared(), math.Max(p1.LengthSquared(), p2.LengthSquared())))
	dp := p1.Mul(-2 * w).Add(p0).Add(p2)
	dw := math.Abs(2 - 2*w)
	rpMinus1 := math.Max(0, maxLen*precision-1)
	numer := dp.Length()*precision + rpMinus1*dw
	denom := 4 * math.Min(w, 1)
	return numer / denom
}

// Conic returns the (fractional) segment count for a conic.
func Conic(precision float64, p0, p1, p2 geom.Point, w float64) float64 {
	return math.Sqrt(ConicPow2(precision, p0, p1, p2, w))
}

// Segments converts a fractional count into a whole number of segments in
// [1, MaxSegments]. NaN counts as the maximum.
func Segments(n float64) int {
	if math.IsNaN(n) || n >= MaxSegments {
		return MaxSegments
	}
	return max(int(math.Ceil(n)), 1)
}

// ResolveLevel returns ceil(log2(n)), the number of binary subdivisions that
// yield at least n segments, clamped to [0, maxLevel].
func ResolveLevel(n float64, maxLevel int) int {
	if !(n > 1) {
		return 0
	}
	lvl := int(math.Ceil(math.Log2(n)))
	return min(max(lvl, 0), maxLevel)
}

// ResolveLevelPow4 is ResolveLevel for an n^4 value.
func ResolveLevelPow4(n4 float64, maxLevel int) int {
	return ResolveLevel(math.Sqrt(math.Sqrt(n4)), maxLevel)
}

// SegmentsFor returns the whole segment count for a curve segment mapped by m.
func SegmentsFor(seg geom.Segment, m geom.Matrix, precision float64) int {
	var pts [4]geom.Point
	m.MapPoints(pts[:seg.NumPoints()], seg.Pts[:seg.NumPoints()])
	switch seg.Verb {
	case geom.VerbQuad:
		return Segments(Quadratic(precision, pts[0], pts[1], pts[2]))
	case geom.VerbConic:
		return Segments(Conic(precision, pts[0], pts[1], pts[2], seg.Weight))
	case geom.VerbCubic:
		return Segments(Cubic(precision, pts[0], pts[1], pts[2], pts[3]))
	default:
		return 1
	}
}
