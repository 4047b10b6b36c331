package geom

import (
	"iter"
	"math"
)

// Verb identifies a path command.
type Verb uint8

// Path verbs.
const (
	VerbMove Verb = iota
	VerbLine
	VerbQuad
	VerbConic
	VerbCubic
	VerbClose
)

// pointCount is the number of points each verb appends.
var pointCount = [...]int{VerbMove: 1, VerbLine: 1, VerbQuad: 2, VerbConic: 2, VerbCubic: 3, VerbClose: 0}

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "move"
	case VerbLine:
		return "line"
	case VerbQuad:
		return "quad"
	case VerbConic:
		return "conic"
	case VerbCubic:
		return "cubic"
	case VerbClose:
		return "close"
	default:
		return "unknown"
	}
}

// FillType selects the rule deciding which points are inside a path.
type FillType uint8

// Fill types. The inverse variants cover everything outside the path.
const (
	FillWinding FillType = iota
	FillEvenOdd
	FillInverseWinding
	FillInverseEvenOdd
)

// IsInverse reports whether the fill type is an inverse variant.
func (f FillType) IsInverse() bool {
	return f == FillInverseWinding || f == FillInverseEvenOdd
}

// IsEvenOdd reports whether the fill type uses the even-odd rule.
func (f FillType) IsEvenOdd() bool {
	return f == FillEvenOdd || f == FillInverseEvenOdd
}

// ToggleInverse flips between a fill type and its inverse.
func (f FillType) ToggleInverse() FillType {
	return f ^ 2
}

// Direction is the winding direction of an added closed shape.
type Direction uint8

// Shape directions, in a y-down coordinate system.
const (
	Clockwise Direction = iota
	CounterClockwise
)

type convexity uint8

const (
	convexityUnknown convexity = iota
	convexityConvex
	convexityConcave
)

// Path is a sequence of contours made of lines, quadratic, conic and cubic
// segments, plus a fill type.
type Path struct {
	verbs     []Verb
	points    []Point
	weights   []float64
	fillType  FillType
	convexity convexity
	// lastMove is the index in points of the current contour start, or -1.
	lastMove int
}

// NewPath returns an empty winding-filled path.
func NewPath() *Path {
	return &Path{lastMove: -1}
}

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	return &Path{
		verbs:     append([]Verb(nil), p.verbs...),
		points:    append([]Point(nil), p.points...),
		weights:   append([]float64(nil), p.weights...),
		fillType:  p.fillType,
		convexity: p.convexity,
		lastMove:  p.lastMove,
	}
}

// Reset empties the path, keeping its fill type and storage.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.weights = p.weights[:0]
	p.convexity = convexityUnknown
	p.lastMove = -1
}

// FillType returns the fill rule.
func (p *Path) FillType() FillType { return p.fillType }

// SetFillType sets the fill rule.
func (p *Path) SetFillType(f FillType) { p.fillType = f }

// IsInverseFillType reports whether the path fills its outside.
func (p *Path) IsInverseFillType() bool { return p.fillType.IsInverse() }

// ToggleInverseFillType flips the fill type between normal and inverse.
func (p *Path) ToggleInverseFillType() { p.fillType = p.fillType.ToggleInverse() }

// CountVerbs returns the number of verbs, including moves and closes.
func (p *Path) CountVerbs() int { return len(p.verbs) }

// CountPoints returns the number of points.
func (p *Path) CountPoints() int { return len(p.points) }

// Points returns the path's points. The slice must not be modified.
func (p *Path) Points() []Point { return p.points }

// Verbs returns the path's verbs. The slice must not be modified.
func (p *Path) Verbs() []Verb { return p.verbs }

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// LastPoint returns the final point and false if the path is empty.
func (p *Path) LastPoint() (Point, bool) {
	if len(p.points) == 0 {
		return Point{}, false
	}
	return p.points[len(p.points)-1], true
}

func (p *Path) dirty() {
	p.convexity = convexityUnknown
}

func (p *Path) injectMoveIfNeeded() {
	if p.lastMove >= 0 && len(p.verbs) > 0 && p.verbs[len(p.verbs)-1] != VerbClose {
		return
	}
	pt := Point{}
	if p.lastMove >= 0 {
		pt = p.points[p.lastMove]
	}
	p.MoveTo(pt.X, pt.Y)
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.dirty()
	p.lastMove = len(p.points)
	p.verbs = append(p.verbs, VerbMove)
	p.points = append(p.points, Point{X: x, Y: y})
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.injectMoveIfNeeded()
	p.dirty()
	p.verbs = append(p.verbs, VerbLine)
	p.points = append(p.points, Point{X: x, Y: y})
}

// QuadTo adds a quadratic curve with control (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.injectMoveIfNeeded()
	p.dirty()
	p.verbs = append(p.verbs, VerbQuad)
	p.points = append(p.points, Point{X: cx, Y: cy}, Point{X: x, Y: y})
}

// ConicTo adds a rational quadratic with control (cx, cy), end (x, y) and
// weight w. Weight 1 is a quad; a non-finite or non-positive weight degrades
// to a line.
func (p *Path) ConicTo(cx, cy, x, y, w float64) {
	switch {
	case !(w > 0) || math.IsInf(w, 0):
		p.LineTo(x, y)
		return
	case w == 1:
		p.QuadTo(cx, cy, x, y)
		return
	}
	p.injectMoveIfNeeded()
	p.dirty()
	p.verbs = append(p.verbs, VerbConic)
	p.points = append(p.points, Point{X: cx, Y: cy}, Point{X: x, Y: y})
	p.weights = append(p.weights, w)
}

// CubicTo adds a cubic curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.injectMoveIfNeeded()
	p.dirty()
	p.verbs = append(p.verbs, VerbCubic)
	p.points = append(p.points, Point{X: c1x, Y: c1y}, Point{X: c2x, Y: c2y}, Point{X: x, Y: y})
}

// Close closes the current contour. Consecutive closes are collapsed.
func (p *Path) Close() {
	if len(p.verbs) == 0 {
		return
	}
	if p.verbs[len(p.verbs)-1] == VerbClose {
		return
	}
	p.dirty()
	p.verbs = append(p.verbs, VerbClose)
}

// AddRect adds a closed rectangle contour starting at its top-left corner.
func (p *Path) AddRect(r Rect, dir Direction) {
	p.MoveTo(r.Left, r.Top)
	if dir == Clockwise {
		p.LineTo(r.Right, r.Top)
		p.LineTo(r.Right, r.Bottom)
		p.LineTo(r.Left, r.Bottom)
	} else {
		p.LineTo(r.Left, r.Bottom)
		p.LineTo(r.Right, r.Bottom)
		p.LineTo(r.Right, r.Top)
	}
	p.Close()
}

// AddPoly adds a polyline through pts, closed if close is true.
func (p *Path) AddPoly(pts []Point, closeContour bool) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	if closeContour {
		p.Close()
	}
}

// conicQuarterWeight is the conic weight of a 90 degree circular arc.
const conicQuarterWeight = math.Sqrt2 / 2

// AddOval adds a closed ellipse inscribed in r built from four conics.
func (p *Path) AddOval(r Rect, dir Direction) {
	cx, cy := r.Center().X, r.Center().Y
	w := conicQuarterWeight
	p.MoveTo(r.Right, cy)
	if dir == Clockwise {
		p.ConicTo(r.Right, r.Bottom, cx, r.Bottom, w)
		p.ConicTo(r.Left, r.Bottom, r.Left, cy, w)
		p.ConicTo(r.Left, r.Top, cx, r.Top, w)
		p.ConicTo(r.Right, r.Top, r.Right, cy, w)
	} else {
		p.ConicTo(r.Right, r.Top, cx, r.Top, w)
		p.ConicTo(r.Left, r.Top, r.Left, cy, w)
		p.ConicTo(r.Left, r.Bottom, cx, r.Bottom, w)
		p.ConicTo(r.Right, r.Bottom, r.Right, cy, w)
	}
	p.Close()
}

// AddCircle adds a closed circle.
func (p *Path) AddCircle(cx, cy, radius float64, dir Direction) {
	if radius <= 0 {
		return
	}
	p.AddOval(Rect{Left: cx - radius, Top: cy - radius, Right: cx + radius, Bottom: cy + radius}, dir)
}

// AddRRect adds a closed rounded rectangle built from lines and conics.
func (p *Path) AddRRect(rr RRect, dir Direction) {
	if rr.IsEmpty() {
		return
	}
	switch rr.Type() {
	case RRectRect:
		p.AddRect(rr.Rect, dir)
		return
	case RRectOval:
		p.AddOval(rr.Rect, dir)
		return
	}
	r := rr.Rect
	ul, ur, lr, ll := rr.Radii[UpperLeft], rr.Radii[UpperRight], rr.Radii[LowerRight], rr.Radii[LowerLeft]
	w := conicQuarterWeight
	p.MoveTo(r.Left+ul.X, r.Top)
	if dir == Clockwise {
		p.LineTo(r.Right-ur.X, r.Top)
		p.ConicTo(r.Right, r.Top, r.Right, r.Top+ur.Y, w)
		p.LineTo(r.Right, r.Bottom-lr.Y)
		p.ConicTo(r.Right, r.Bottom, r.Right-lr.X, r.Bottom, w)
		p.LineTo(r.Left+ll.X, r.Bottom)
		p.ConicTo(r.Left, r.Bottom, r.Left, r.Bottom-ll.Y, w)
		p.LineTo(r.Left, r.Top+ul.Y)
		p.ConicTo(r.Left, r.Top, r.Left+ul.X, r.Top, w)
	} else {
		p.ConicTo(r.Left, r.Top, r.Left, r.Top+ul.Y, w)
		p.LineTo(r.Left, r.Bottom-ll.Y)
		p.ConicTo(r.Left, r.Bottom, r.Left+ll.X, r.Bottom, w)
		p.LineTo(r.Right-lr.X, r.Bottom)
		p.ConicTo(r.Right, r.Bottom, r.Right, r.Bottom-lr.Y, w)
		p.LineTo(r.Right, r.Top+ur.Y)
		p.ConicTo(r.Right, r.Top, r.Right-ur.X, r.Top, w)
	}
	p.Close()
}

// AddPath appends every contour of src.
func (p *Path) AddPath(src *Path) {
	for seg := range src.Segments() {
		switch seg.Verb {
		case VerbMove:
			p.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case VerbLine:
			p.LineTo(seg.Pts[1].X, seg.Pts[1].Y)
		case VerbQuad:
			p.QuadTo(seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case VerbConic:
			p.ConicTo(seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y, seg.Weight)
		case VerbCubic:
			p.CubicTo(seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y, seg.Pts[3].X, seg.Pts[3].Y)
		case VerbClose:
			p.Close()
		}
	}
}

// Segment is one verb with its points. For drawing verbs Pts[0] is the
// current point; Close carries the current point and the contour start.
type Segment struct {
	Verb   Verb
	Pts    [4]Point
	Weight float64
}

// NumPoints returns how many entries of Pts are meaningful.
func (s Segment) NumPoints() int {
	switch s.Verb {
	case VerbMove:
		return 1
	case VerbLine, VerbClose:
		return 2
	case VerbQuad, VerbConic:
		return 3
	default:
		return 4
	}
}

// Segments iterates the path verb by verb.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		pi, wi := 0, 0
		var cur, start Point
		for _, v := range p.verbs {
			seg := Segment{Verb: v}
			switch v {
			case VerbMove:
				cur = p.points[pi]
				start = cur
				seg.Pts[0] = cur
			case VerbClose:
				seg.Pts[0], seg.Pts[1] = cur, start
				cur = start
			default:
				n := pointCount[v]
				seg.Pts[0] = cur
				copy(seg.Pts[1:], p.points[pi:pi+n])
				cur = p.points[pi+n-1]
				if v == VerbConic {
					seg.Weight = p.weights[wi]
					wi++
				}
			}
			pi += pointCount[v]
			if !yield(seg) {
				return
			}
		}
	}
}

// Bounds returns the bounds of all points, including curve control points.
func (p *Path) Bounds() Rect {
	return BoundsOf(p.points)
}

// IsFinite reports whether every point and conic weight is finite.
func (p *Path) IsFinite() bool {
	for _, pt := range p.points {
		if !pt.IsFinite() {
			return false
		}
	}
	for _, w := range p.weights {
		if !isFinite(w) {
			return false
		}
	}
	return true
}

// IsLine reports whether the path is exactly a move followed by one line.
func (p *Path) IsLine() ([2]Point, bool) {
	if len(p.verbs) == 2 && p.verbs[0] == VerbMove && p.verbs[1] == VerbLine {
		return [2]Point{p.points[0], p.points[1]}, true
	}
	return [2]Point{}, false
}

// Transform returns a copy of p with every point mapped by m. Under
// perspective, curve control points are mapped directly.
func (p *Path) Transform(m Matrix) *Path {
	out := p.Clone()
	m.MapPoints(out.points, out.points)
	out.convexity = convexityUnknown
	return out
}

// TransformInPlace maps every point of p by m.
func (p *Path) TransformInPlace(m Matrix) {
	m.MapPoints(p.points, p.points)
	p.convexity = convexityUnknown
}

// Offset returns a copy of p translated by (dx, dy).
func (p *Path) Offset(dx, dy float64) *Path {
	return p.Transform(Translate(dx, dy))
}

// IsConvex reports whether the path is a single convex contour. Degenerate
// paths (empty, a point, a line) count as convex.
func (p *Path) IsConvex() bool {
	if p.convexity == convexityUnknown {
		if p.computeConvex() {
			p.convexity = convexityConvex
		} else {
			p.convexity = convexityConcave
		}
	}
	return p.convexity == convexityConvex
}

func (p *Path) computeConvex() bool {
	var poly []Point
	contours := 0
	for seg := range p.Segments() {
		switch seg.Verb {
		case VerbMove:
			contours++
			if contours > 1 {
				// A trailing lone move does not start a real contour.
				continue
			}
			poly = append(poly, seg.Pts[0])
		case VerbClose:
		default:
			if contours > 1 {
				return false
			}
			poly = append(poly, seg.Pts[1:seg.NumPoints()]...)
		}
	}
	return IsConvexPolygon(poly)
}

// IsConvexPolygon reports whether the closed polygon through pts turns
// consistently in one direction and winds at most once.
func IsConvexPolygon(pts []Point) bool {
	// Drop repeated points, including the closing duplicate.
	clean := make([]Point, 0, len(pts))
	for _, pt := range pts {
		if !pt.IsFinite() {
			return false
		}
		if len(clean) == 0 || clean[len(clean)-1] != pt {
			clean = append(clean, pt)
		}
	}
	for len(clean) > 1 && clean[len(clean)-1] == clean[0] {
		clean = clean[:len(clean)-1]
	}
	n := len(clean)
	if n < 3 {
		return true
	}
	sign := 0.0
	xFlips, yFlips := 0, 0
	prev := clean[0].Sub(clean[n-1])
	lastDX, lastDY := prev.X, prev.Y
	for i := range n {
		next := clean[(i+1)%n].Sub(clean[i])
		cross := prev.Cross(next)
		if cross != 0 {
			if sign == 0 {
				sign = math.Copysign(1, cross)
			} else if math.Copysign(1, cross) != sign {
				return false
			}
		} else if prev.Dot(next) < 0 {
			// Doubling back along the same line.
			return false
		}
		if next.X != 0 {
			if lastDX != 0 && (next.X > 0) != (lastDX > 0) {
				xFlips++
			}
			lastDX = next.X
		}
		if next.Y != 0 {
			if lastDY != 0 && (next.Y > 0) != (lastDY > 0) {
				yFlips++
			}
			lastDY = next.Y
		}
		prev = next
	}
	return xFlips <= 2 && yFlips <= 2
}

// IsRect reports whether the path is a single closed axis-aligned rectangle
// made of lines, and returns it sorted.
func (p *Path) IsRect() (Rect, bool) {
	if len(p.verbs) == 0 || p.verbs[0] != VerbMove {
		return Rect{}, false
	}
	end := len(p.verbs)
	for end > 1 && p.verbs[end-1] == VerbClose {
		end--
	}
	for _, v := range p.verbs[1:end] {
		if v != VerbLine {
			return Rect{}, false
		}
	}
	return rectFromPolygon(p.points[:end])
}

func rectFromPolygon(pts []Point) (Rect, bool) {
	corners := make([]Point, 0, 5)
	for _, pt := range pts {
		if len(corners) == 0 || corners[len(corners)-1] != pt {
			corners = append(corners, pt)
		}
	}
	if len(corners) == 5 && corners[4] == corners[0] {
		corners = corners[:4]
	}
	if len(corners) != 4 {
		return Rect{}, false
	}
	for i := range 4 {
		a, b := corners[i], corners[(i+1)%4]
		horiz := a.Y == b.Y
		vert := a.X == b.X
		if horiz == vert {
			return Rect{}, false
		}
		// Edges must alternate orientation.
		c := corners[(i+2)%4]
		if horiz && b.X != c.X || vert && b.Y != c.Y {
			return Rect{}, false
		}
	}
	r := Rect{Left: corners[0].X, Top: corners[0].Y, Right: corners[2].X, Bottom: corners[2].Y}.Sorted()
	if r.IsEmpty() {
		return Rect{}, false
	}
	return r, true
}

// IsNestedFillRects reports whether the path is two rect contours, one
// strictly inside the other, and returns them outer first. With a winding
// fill the contours must run in opposite directions.
func (p *Path) IsNestedFillRects() ([2]Rect, bool) {
	var out [2]Rect
	var area [2]float64
	idx := 0
	start := -1
	verbsStart := 0
	pi := 0
	flush := func(vEnd, pEnd int) bool {
		if start < 0 {
			return true
		}
		if idx >= 2 {
			return false
		}
		for _, v := range p.verbs[verbsStart+1 : vEnd] {
			if v != VerbLine && v != VerbClose {
				return false
			}
		}
		r, ok := rectFromPolygon(p.points[start:pEnd])
		if !ok {
			return false
		}
		out[idx] = r
		area[idx] = signedArea(p.points[start:pEnd])
		idx++
		return true
	}
	for vi, v := range p.verbs {
		if v == VerbMove {
			if !flush(vi, pi) {
				return out, false
			}
			start, verbsStart = pi, vi
		}
		pi += pointCount[v]
	}
	if !flush(len(p.verbs), pi) || idx != 2 {
		return out, false
	}
	if out[1].Contains(out[0]) {
		out[0], out[1] = out[1], out[0]
		area[0], area[1] = area[1], area[0]
	}
	if !out[0].Contains(out[1]) || out[0] == out[1] {
		return out, false
	}
	if !p.fillType.IsEvenOdd() && (area[0] > 0) == (area[1] > 0) {
		return out, false
	}
	return out, true
}

func signedArea(pts []Point) float64 {
	a := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].Cross(pts[j])
	}
	return a * 0.5
}
