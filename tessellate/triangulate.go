package tessellate

import "github.com/gogpu/pathcov/geom"

// maxEarClipPoints bounds the contours given to the quadratic ear clipper.
const maxEarClipPoints = 4096

// innerTriangles triangulates every contour of g as a triangle list of x, y
// pairs. Simple contours are ear clipped; the rest fall back to the
// middle-out fan, which is exact under a winding stencil but may spill past
// the polygon. ok is false when any contour fell back.
func innerTriangles(g *pathGeometry) (xy []float32, ok bool) {
	ok = true
	var idx []int
	for _, c := range g.contours {
		var clipped bool
		xy, clipped = earClip(xy, c)
		if clipped {
			continue
		}
		ok = false
		idx = MiddleOutPolygon(idx[:0], len(c))
		for _, i := range idx {
			xy = append(xy, float32(c[i].X), float32(c[i].Y))
		}
	}
	return xy, ok
}

// earClip appends the triangles of a simple polygon to dst in the polygon's
// orientation. It returns dst unchanged and false for self-intersecting,
// degenerate or oversized polygons.
func earClip(dst []float32, pts []geom.Point) ([]float32, bool) {
	n := len(pts)
	if n < 3 || n > maxEarClipPoints || !isSimplePolygon(pts) {
		return dst, false
	}
	var area float64
	for i := range n {
		area += pts[i].Cross(pts[(i+1)%n])
	}
	if area == 0 {
		return dst, false
	}
	orient := 1.0
	if area < 0 {
		orient = -1
	}

	start := len(dst)
	v := make([]int, n)
	for i := range v {
		v[i] = i
	}
	for len(v) > 3 {
		found := false
		for i := range v {
			a, b, c := v[(i+len(v)-1)%len(v)], v[i], v[(i+1)%len(v)]
			if !isEar(pts, v, a, b, c, orient) {
				continue
			}
			dst = append(dst,
				float32(pts[a].X), float32(pts[a].Y),
				float32(pts[b].X), float32(pts[b].Y),
				float32(pts[c].X), float32(pts[c].Y))
			v = append(v[:i], v[i+1:]...)
			found = true
			break
		}
		if !found {
			return dst[:start], false
		}
	}
	a, b, c := v[0], v[1], v[2]
	dst = append(dst,
		float32(pts[a].X), float32(pts[a].Y),
		float32(pts[b].X), float32(pts[b].Y),
		float32(pts[c].X), float32(pts[c].Y))
	return dst, true
}

func isEar(pts []geom.Point, v []int, a, b, c int, orient float64) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	if pb.Sub(pa).Cross(pc.Sub(pb))*orient <= 0 {
		return false
	}
	for _, i := range v {
		if i == a || i == b || i == c {
			continue
		}
		if inTriangle(pts[i], pa, pb, pc, orient) {
			return false
		}
	}
	return true
}

// inTriangle reports whether p lies inside or on the triangle abc, which
// winds in the orient direction.
func inTriangle(p, a, b, c geom.Point, orient float64) bool {
	return b.Sub(a).Cross(p.Sub(a))*orient >= 0 &&
		c.Sub(b).Cross(p.Sub(b))*orient >= 0 &&
		a.Sub(c).Cross(p.Sub(c))*orient >= 0
}

// isSimplePolygon reports whether no two non-adjacent edges of the closed
// polygon intersect.
func isSimplePolygon(pts []geom.Point) bool {
	n := len(pts)
	for i := range n {
		a0, a1 := pts[i], pts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(a0, a1, pts[j], pts[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

func segmentsIntersect(p0, p1, q0, q1 geom.Point) bool {
	d1 := side(q0, q1, p0)
	d2 := side(q0, q1, p1)
	d3 := side(p0, p1, q0)
	d4 := side(p0, p1, q1)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && onSegment(q0, q1, p0)) ||
		(d2 == 0 && onSegment(q0, q1, p1)) ||
		(d3 == 0 && onSegment(p0, p1, q0)) ||
		(d4 == 0 && onSegment(p0, p1, q1))
}

func side(a, b, p geom.Point) float64 { return b.Sub(a).Cross(p.Sub(a)) }

func onSegment(a, b, p geom.Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
