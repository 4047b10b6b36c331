// Package flatten converts paths into polylines, one per contour, with the
// number of line segments per curve chosen by Wang's formula.
package flatten

import (
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/wangs"
)

// Contour is a flattened contour. Closed is set when the source contour ended
// with an explicit close.
type Contour struct {
	Points []geom.Point
	Closed bool
}

// Path maps p by m and flattens every contour in device space. Contours with
// a single point are kept so callers can draw caps for zero-length strokes.
func Path(p *geom.Path, m geom.Matrix, precision float64) []Contour {
	var out []Contour
	var cur *Contour
	for seg := range p.Segments() {
		var pts [4]geom.Point
		n := seg.NumPoints()
		m.MapPoints(pts[:n], seg.Pts[:n])
		switch seg.Verb {
		case geom.VerbMove:
			out = append(out, Contour{Points: []geom.Point{pts[0]}})
			cur = &out[len(out)-1]
		case geom.VerbClose:
			if cur != nil {
				cur.Closed = true
			}
		case geom.VerbLine:
			cur.Points = append(cur.Points, pts[1])
		case geom.VerbQuad:
			cur.Points = AppendQuad(cur.Points, pts[0], pts[1], pts[2],
				wangs.Segments(wangs.Quadratic(precision, pts[0], pts[1], pts[2])))
		case geom.VerbConic:
			cur.Points = AppendConic(cur.Points, pts[0], pts[1], pts[2], seg.Weight,
				wangs.Segments(wangs.Conic(precision, pts[0], pts[1], pts[2], seg.Weight)))
		case geom.VerbCubic:
			cur.Points = AppendCubic(cur.Points, pts[0], pts[1], pts[2], pts[3],
				wangs.Segments(wangs.Cubic(precision, pts[0], pts[1], pts[2], pts[3])))
		}
	}
	return out
}

// AppendQuad appends n-1 interior points and the end point of a quadratic.
func AppendQuad(dst []geom.Point, p0, p1, p2 geom.Point, n int) []geom.Point {
	for i := 1; i < n; i++ {
		dst = append(dst, EvalQuad(p0, p1, p2, float64(i)/float64(n)))
	}
	return append(dst, p2)
}

// AppendConic appends n-1 interior points and the end point of a conic.
func AppendConic(dst []geom.Point, p0, p1, p2 geom.Point, w float64, n int) []geom.Point {
	for i := 1; i < n; i++ {
		dst = append(dst, EvalConic(p0, p1, p2, w, float64(i)/float64(n)))
	}
	return append(dst, p2)
}

// AppendCubic appends n-1 interior points and the end point of a cubic.
func AppendCubic(dst []geom.Point, p0, p1, p2, p3 geom.Point, n int) []geom.Point {
	for i := 1; i < n; i++ {
		dst = append(dst, EvalCubic(p0, p1, p2, p3, float64(i)/float64(n)))
	}
	return append(dst, p3)
}

// EvalQuad evaluates a quadratic at t.
func EvalQuad(p0, p1, p2 geom.Point, t float64) geom.Point {
	mt := 1 - t
	return p0.Mul(mt * mt).Add(p1.Mul(2 * mt * t)).Add(p2.Mul(t * t))
}

// EvalConic evaluates a rational quadratic with middle weight w at t.
func EvalConic(p0, p1, p2 geom.Point, w, t float64) geom.Point {
	mt := 1 - t
	b0, b1, b2 := mt*mt, 2*mt*t*w, t*t
	d := b0 + b1 + b2
	return p0.Mul(b0 / d).Add(p1.Mul(b1 / d)).Add(p2.Mul(b2 / d))
}

// EvalCubic evaluates a cubic at t.
func EvalCubic(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	mt := 1 - t
	return p0.Mul(mt * mt * mt).
		Add(p1.Mul(3 * mt * mt * t)).
		Add(p2.Mul(3 * mt * t * t)).
		Add(p3.Mul(t * t * t))
}

// Edge is a directed line segment.
type Edge struct {
	P0, P1 geom.Point
}

// FillEdges returns the edges of every contour, each implicitly closed.
// Horizontal edges are kept; scan converters skip them.
func FillEdges(contours []Contour) []Edge {
	var edges []Edge
	for _, c := range contours {
		n := len(c.Points)
		if n < 2 {
			continue
		}
		for i := range n - 1 {
			edges = append(edges, Edge{P0: c.Points[i], P1: c.Points[i+1]})
		}
		if c.Points[n-1] != c.Points[0] {
			edges = append(edges, Edge{P0: c.Points[n-1], P1: c.Points[0]})
		}
	}
	return edges
}

// StrokeEdges returns the edges of every contour, closing only closed ones.
func StrokeEdges(contours []Contour) []Edge {
	var edges []Edge
	for _, c := range contours {
		n := len(c.Points)
		for i := range n - 1 {
			edges = append(edges, Edge{P0: c.Points[i], P1: c.Points[i+1]})
		}
		if c.Closed && n > 1 && c.Points[n-1] != c.Points[0] {
			edges = append(edges, Edge{P0: c.Points[n-1], P1: c.Points[0]})
		}
	}
	return edges
}
