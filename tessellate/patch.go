package tessellate

import (
	"math"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/wangs"
)

// patchFloats is the size of one curve patch: four points in cubic form.
// Conics on devices with infinity support store {w, +Inf} as the fourth
// point.
const patchFloats = 8

// pathGeometry is a fill path split into the polygon through its on-curve
// points and the curve patches bulging off that polygon, in local space.
type pathGeometry struct {
	contours     [][]geom.Point
	patches      []float32
	numPatches   int
	resolveLevel int
	verbs        int
	// moves counts the path's contours, including those too small to
	// appear in contours.
	moves int
}

// fanTriangles returns the middle-out fan of every contour as a triangle
// list of x, y pairs.
func (g *pathGeometry) fanTriangles() []float32 {
	var out []float32
	var idx []int
	for _, c := range g.contours {
		idx = MiddleOutPolygon(idx[:0], len(c))
		for _, i := range idx {
			out = append(out, float32(c[i].X), float32(c[i].Y))
		}
	}
	return out
}

// patchWriter accumulates patches with their resolve level. Resolve levels
// are measured in device space, the patches stay in local space.
type patchWriter struct {
	m        geom.Matrix
	infinity bool
	g        *pathGeometry
}

func (w *patchWriter) writeCubic(p0, p1, p2, p3 geom.Point) {
	var dev [4]geom.Point
	w.m.MapPoints(dev[:], []geom.Point{p0, p1, p2, p3})
	n := wangs.Cubic(wangs.Precision, dev[0], dev[1], dev[2], dev[3])
	if n > 1<<MaxFixedResolveLevel && !math.IsInf(n, 1) {
		a, b := chopCubic(p0, p1, p2, p3)
		w.writeCubic(a[0], a[1], a[2], a[3])
		w.writeCubic(b[0], b[1], b[2], b[3])
		return
	}
	w.emit(wangs.ResolveLevel(n, MaxFixedResolveLevel), p0, p1, p2, p3)
}

func (w *patchWriter) writeQuad(p0, p1, p2 geom.Point) {
	c1 := p0.Add(p1.Sub(p0).Mul(2.0 / 3))
	c2 := p2.Add(p1.Sub(p2).Mul(2.0 / 3))
	w.writeCubic(p0, c1, c2, p2)
}

func (w *patchWriter) writeConic(p0, p1, p2 geom.Point, weight float64) {
	if !w.infinity {
		for _, q := range conicToQuads(p0, p1, p2, weight, 2) {
			w.writeQuad(q[0], q[1], q[2])
		}
		return
	}
	var dev [3]geom.Point
	w.m.MapPoints(dev[:], []geom.Point{p0, p1, p2})
	n := wangs.Conic(wangs.Precision, dev[0], dev[1], dev[2], weight)
	if n > 1<<MaxFixedResolveLevel && !math.IsInf(n, 1) {
		a, b, wh := chopConic(p0, p1, p2, weight)
		w.writeConic(a[0], a[1], a[2], wh)
		w.writeConic(b[0], b[1], b[2], wh)
		return
	}
	w.emit(wangs.ResolveLevel(n, MaxFixedResolveLevel), p0, p1, p2, geom.Point{X: weight, Y: math.Inf(1)})
}

func (w *patchWriter) emit(level int, pts ...geom.Point) {
	for _, p := range pts {
		w.g.patches = append(w.g.patches, float32(p.X), float32(p.Y))
	}
	w.g.numPatches++
	w.g.resolveLevel = max(w.g.resolveLevel, level)
}

// splitPath builds the polygon and patches of path for drawing under m.
func splitPath(path *geom.Path, m geom.Matrix, caps Caps) *pathGeometry {
	g := &pathGeometry{verbs: path.CountVerbs()}
	w := patchWriter{m: m, infinity: caps.InfinitySupport, g: g}
	var cur []geom.Point
	flush := func() {
		if n := len(cur); n > 1 && cur[n-1] == cur[0] {
			cur = cur[:n-1]
		}
		if len(cur) >= 3 {
			g.contours = append(g.contours, cur)
		}
		cur = nil
	}
	add := func(p geom.Point) {
		if n := len(cur); n == 0 || cur[n-1] != p {
			cur = append(cur, p)
		}
	}
	for seg := range path.Segments() {
		p := seg.Pts
		switch seg.Verb {
		case geom.VerbMove:
			flush()
			g.moves++
			cur = append(cur, p[0])
		case geom.VerbLine:
			add(p[1])
		case geom.VerbQuad:
			w.writeQuad(p[0], p[1], p[2])
			add(p[2])
		case geom.VerbConic:
			w.writeConic(p[0], p[1], p[2], seg.Weight)
			add(p[2])
		case geom.VerbCubic:
			w.writeCubic(p[0], p[1], p[2], p[3])
			add(p[3])
		case geom.VerbClose:
			flush()
		}
	}
	flush()
	return g
}

// chopCubic splits a cubic at t = 1/2.
func chopCubic(p0, p1, p2, p3 geom.Point) (a, b [4]geom.Point) {
	ab := p0.Lerp(p1, 0.5)
	bc := p1.Lerp(p2, 0.5)
	cd := p2.Lerp(p3, 0.5)
	abc := ab.Lerp(bc, 0.5)
	bcd := bc.Lerp(cd, 0.5)
	mid := abc.Lerp(bcd, 0.5)
	return [4]geom.Point{p0, ab, abc, mid}, [4]geom.Point{mid, bcd, cd, p3}
}

// chopConic splits a conic at t = 1/2. Both halves share the returned
// weight.
func chopConic(p0, p1, p2 geom.Point, w float64) (a, b [3]geom.Point, half float64) {
	s := 1 / (1 + w)
	c0 := p0.Add(p1.Mul(w)).Mul(s)
	c1 := p1.Mul(w).Add(p2).Mul(s)
	mid := c0.Lerp(c1, 0.5)
	return [3]geom.Point{p0, c0, mid}, [3]geom.Point{mid, c1, p2}, math.Sqrt((1 + w) / 2)
}

// conicToQuads approximates a conic by 2^pow2 quads, treating each chopped
// half conic as a quad with the same control points.
func conicToQuads(p0, p1, p2 geom.Point, w float64, pow2 int) [][3]geom.Point {
	if pow2 == 0 {
		return [][3]geom.Point{{p0, p1, p2}}
	}
	a, b, wh := chopConic(p0, p1, p2, w)
	return append(conicToQuads(a[0], a[1], a[2], wh, pow2-1),
		conicToQuads(b[0], b[1], b[2], wh, pow2-1)...)
}
