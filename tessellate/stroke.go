package tessellate

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/wangs"
)

// maxStrokeEdges caps the edge count of one fixed-count instance.
const maxStrokeEdges = 1<<14 - 1

// hairlineEpsilonWidth is the local hairline width under a matrix that
// collapses an axis.
const hairlineEpsilonWidth = 1.0 / 4096

// Instance layout in floats: p0..p3 and the previous control point, then the
// optional dynamic stroke (radius, join) and color.
const (
	strokeInstanceFloats = 10
	dynamicStrokeFloats  = 2
	dynamicColorFloats   = 4
)

// StrokeTolerances are the local-space tolerances of a stroke drawn under
// a matrix.
type StrokeTolerances struct {
	// ParametricPrecision is the Wang's formula precision in local space.
	ParametricPrecision float64
	// NumRadialSegmentsPerRadian is how many segments the stroke needs per
	// radian of tangent rotation.
	NumRadialSegmentsPerRadian float64
}

// NewStrokeTolerances returns the tolerances of a stroke of strokeWidth
// local units drawn under a matrix with the given max scale.
func NewStrokeTolerances(matrixMaxScale, strokeWidth float64) StrokeTolerances {
	pp := matrixMaxScale * wangs.Precision
	return StrokeTolerances{
		ParametricPrecision:        pp,
		NumRadialSegmentsPerRadian: NumRadialSegmentsPerRadian(pp, strokeWidth),
	}
}

// NumRadialSegmentsPerRadian returns the radial density at which the outer
// edge of a stroke stays within 1/parametricPrecision of the true arc.
func NumRadialSegmentsPerRadian(parametricPrecision, strokeWidth float64) float64 {
	cosTheta := 1 - 2/(parametricPrecision*strokeWidth)
	return 0.5 / math.Acos(max(cosTheta, -1))
}

// LocalStrokeWidth returns the width s is tessellated with under m. A
// hairline is one device pixel wide.
func LocalStrokeWidth(s StrokeStyle, m geom.Matrix) float64 {
	if !s.IsHairline() {
		return s.Width
	}
	minScale := m.MinScale()
	if !(minScale > 0) || math.IsInf(1/minScale, 0) {
		return hairlineEpsilonWidth
	}
	return 1 / minScale
}

// joinCode encodes a join for the shader: the miter limit for miters, 0 for
// bevels and -1 for round joins.
func joinCode(s StrokeStyle) float32 {
	switch s.Join {
	case JoinRound:
		return -1
	case JoinMiter:
		if s.MiterLimit >= 1 {
			return float32(s.MiterLimit)
		}
	}
	return 0
}

// joinEdges returns the edges a join of the given rotation needs.
func joinEdges(j Join, rotation float32, radialPerRadian float64) int {
	switch j {
	case JoinMiter:
		return 4
	case JoinBevel:
		return 3
	default:
		return max(int(math32.Ceil(rotation*float32(radialPerRadian))), 1) + 2
	}
}

// rotation returns the absolute angle from tangent a to tangent b. Tangents
// within sinEpsilon of parallel do not rotate.
func rotation(a, b geom.Point, sinEpsilon float64) float32 {
	ax, ay := float32(a.X), float32(a.Y)
	bx, by := float32(b.X), float32(b.Y)
	la, lb := math32.Hypot(ax, ay), math32.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return 0
	}
	cross := (ax*by - ay*bx) / (la * lb)
	dot := (ax*bx + ay*by) / (la * lb)
	if dot > 0 && math32.Abs(cross) < float32(sinEpsilon) {
		return 0
	}
	return math32.Abs(math32.Atan2(cross, dot))
}

// turning returns the total rotation along a control polygon.
func turning(pts []geom.Point) float32 {
	var total float32
	var prev geom.Point
	have := false
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		if d == (geom.Point{}) {
			continue
		}
		if have {
			total += rotation(prev, d, 0)
		}
		prev, have = d, true
	}
	return total
}

// strokeSeg is one stroked curve in cubic form, or a conic in the first
// three points.
type strokeSeg struct {
	pts   [4]geom.Point
	conic bool
	line  bool
	w     float64
}

func lineSeg(a, b geom.Point) strokeSeg {
	return strokeSeg{pts: [4]geom.Point{a, a, b, b}, line: true}
}

func quadSeg(p0, p1, p2 geom.Point) strokeSeg {
	return strokeSeg{pts: [4]geom.Point{
		p0,
		p0.Add(p1.Sub(p0).Mul(2.0 / 3)),
		p2.Add(p1.Sub(p2).Mul(2.0 / 3)),
		p2,
	}}
}

func (s *strokeSeg) points() []geom.Point {
	if s.conic {
		return s.pts[:3]
	}
	return s.pts[:]
}

func (s *strokeSeg) end() geom.Point {
	p := s.points()
	return p[len(p)-1]
}

func (s *strokeSeg) degenerate() bool {
	for _, p := range s.points()[1:] {
		if p != s.pts[0] {
			return false
		}
	}
	return true
}

func (s *strokeSeg) startTangent() geom.Point {
	for _, p := range s.points()[1:] {
		if d := p.Sub(s.pts[0]); d != (geom.Point{}) {
			return d
		}
	}
	return geom.Point{}
}

func (s *strokeSeg) endTangent() geom.Point {
	p := s.points()
	e := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		if d := e.Sub(p[i]); d != (geom.Point{}) {
			return d
		}
	}
	return geom.Point{}
}

// strokeWriter writes fixed-count stroke instances and tracks the edge
// counts the batch needs.
type strokeWriter struct {
	sinEpsilon float64
	infinity   bool
	dynStroke  bool
	dynColor   bool

	// Current stroke.
	tol    StrokeTolerances
	style  StrokeStyle
	radius float64
	params [2]float32
	color  Color

	segs      []strokeSeg
	data      []float32
	instances int
	// maxEdges is the largest curve edge count, joinEdges the largest join.
	maxEdges  int
	joinEdges int
}

func (w *strokeWriter) stride() int {
	n := strokeInstanceFloats
	if w.dynStroke {
		n += dynamicStrokeFloats
	}
	if w.dynColor {
		n += dynamicColorFloats
	}
	return n
}

// begin sets the stroke written by the following calls.
func (w *strokeWriter) begin(n *PathStrokeList, width float64, tol StrokeTolerances) {
	w.tol = tol
	w.style = n.Stroke
	w.radius = width / 2
	w.params = [2]float32{float32(width / 2), joinCode(n.Stroke)}
	w.color = n.Color
}

func (w *strokeWriter) writePath(path *geom.Path) {
	var start geom.Point
	drew := false
	w.segs = w.segs[:0]
	for seg := range path.Segments() {
		p := seg.Pts
		switch seg.Verb {
		case geom.VerbMove:
			w.writeContour(start, false, drew)
			start, drew = p[0], false
		case geom.VerbLine:
			w.segs = append(w.segs, lineSeg(p[0], p[1]))
			drew = true
		case geom.VerbQuad:
			w.segs = append(w.segs, quadSeg(p[0], p[1], p[2]))
			drew = true
		case geom.VerbConic:
			if w.infinity {
				w.segs = append(w.segs, strokeSeg{pts: [4]geom.Point{p[0], p[1], p[2]}, conic: true, w: seg.Weight})
			} else {
				for _, q := range conicToQuads(p[0], p[1], p[2], seg.Weight, 2) {
					w.segs = append(w.segs, quadSeg(q[0], q[1], q[2]))
				}
			}
			drew = true
		case geom.VerbCubic:
			w.segs = append(w.segs, strokeSeg{pts: [4]geom.Point{p[0], p[1], p[2], p[3]}})
			drew = true
		case geom.VerbClose:
			if p[0] != p[1] {
				w.segs = append(w.segs, lineSeg(p[0], p[1]))
			}
			w.writeContour(start, true, true)
			drew = false
		}
	}
	w.writeContour(start, false, drew)
}

// writeContour writes the pending segments as one contour and clears them.
// A contour that drew only zero-length segments gets its caps as a dot.
func (w *strokeWriter) writeContour(start geom.Point, closed, drew bool) {
	segs := w.segs[:0]
	for _, s := range w.segs {
		if !s.degenerate() {
			segs = append(segs, s)
		}
	}
	w.segs = w.segs[:0]
	if len(segs) == 0 {
		if drew {
			w.writeDot(start)
		}
		return
	}

	prevTan := segs[0].startTangent()
	if closed {
		prevTan = segs[len(segs)-1].endTangent()
	} else {
		w.writeCap(segs[0].pts[0], prevTan.Normalize().Mul(-1))
	}
	for i := range segs {
		if i > 0 {
			prevTan = segs[i-1].endTangent()
		}
		w.writeSeg(&segs[i], prevTan, closed || i > 0)
	}
	if !closed {
		last := &segs[len(segs)-1]
		w.writeCap(last.end(), last.endTangent().Normalize())
	}
}

func (w *strokeWriter) writeSeg(s *strokeSeg, prevTan geom.Point, join bool) {
	if join {
		rot := rotation(prevTan, s.startTangent(), w.sinEpsilon)
		w.joinEdges = max(w.joinEdges, joinEdges(w.style.Join, rot, w.tol.NumRadialSegmentsPerRadian))
	}
	param := 1
	switch {
	case s.line:
	case s.conic:
		param = wangs.Segments(wangs.Conic(w.tol.ParametricPrecision, s.pts[0], s.pts[1], s.pts[2], s.w))
	default:
		param = wangs.Segments(wangs.Cubic(w.tol.ParametricPrecision, s.pts[0], s.pts[1], s.pts[2], s.pts[3]))
	}
	radial := max(int(math32.Ceil(turning(s.points())*float32(w.tol.NumRadialSegmentsPerRadian))), 1)
	w.maxEdges = max(w.maxEdges, min(param+radial, maxStrokeEdges))
	w.emit(s, s.pts[0].Sub(prevTan))
}

// writeCap writes the cap at p, where out is the unit direction pointing
// away from the stroke.
func (w *strokeWriter) writeCap(p, out geom.Point) {
	switch w.style.Cap {
	case CapRound:
		w.writeRoundCap(p)
	case CapSquare:
		w.writeSquare(p, p.Add(out.Mul(w.radius)))
	}
}

// writeRoundCap writes a zero-length instance whose join sweeps half a
// turn, which strokes a full disc.
func (w *strokeWriter) writeRoundCap(p geom.Point) {
	w.joinEdges = max(w.joinEdges, joinEdges(JoinRound, math.Pi, w.tol.NumRadialSegmentsPerRadian))
	s := strokeSeg{pts: [4]geom.Point{p, p, p, p}}
	w.emit(&s, p.Add(geom.Point{X: 1}))
}

// writeSquare writes the line a-b without a join.
func (w *strokeWriter) writeSquare(a, b geom.Point) {
	s := lineSeg(a, b)
	w.maxEdges = max(w.maxEdges, 2)
	w.emit(&s, a.Sub(b.Sub(a)))
}

// writeDot writes the caps of a zero-length contour at p. The tangent is
// the x axis.
func (w *strokeWriter) writeDot(p geom.Point) {
	switch w.style.Cap {
	case CapRound:
		w.writeRoundCap(p)
	case CapSquare:
		r := geom.Point{X: w.radius}
		w.writeSquare(p.Sub(r), p.Add(r))
	}
}

func (w *strokeWriter) emit(s *strokeSeg, prevCtrl geom.Point) {
	p := &s.pts
	w.data = append(w.data,
		float32(p[0].X), float32(p[0].Y),
		float32(p[1].X), float32(p[1].Y),
		float32(p[2].X), float32(p[2].Y))
	if s.conic {
		w.data = append(w.data, float32(s.w), float32(math.Inf(1)))
	} else {
		w.data = append(w.data, float32(p[3].X), float32(p[3].Y))
	}
	w.data = append(w.data, float32(prevCtrl.X), float32(prevCtrl.Y))
	if w.dynStroke {
		w.data = append(w.data, w.params[0], w.params[1])
	}
	if w.dynColor {
		w.data = append(w.data, w.color[0], w.color[1], w.color[2], w.color[3])
	}
	w.instances++
}
