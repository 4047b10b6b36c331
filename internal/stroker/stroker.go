// Package stroker converts a stroked path into the closed outline that,
// filled with the winding rule, covers the same pixels.
//
// Each contour is flattened and walked once, building two offset polylines at
// plus and minus half the stroke width. Open contours are joined into one
// outline through their end caps; closed contours produce an outer and an
// inner ring of opposite orientation.
package stroker

import (
	"math"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/flatten"
	"github.com/gogpu/pathcov/internal/wangs"
)

// Cap is the shape of an open contour's ends.
type Cap uint8

// Caps.
const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape drawn where two segments meet.
type Join uint8

// Joins.
const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style describes a stroke.
type Style struct {
	Width      float64
	MiterLimit float64
	Cap        Cap
	Join       Join
}

// Stroke returns the fill outline of src stroked with st. resScale is the
// number of device pixels per local unit; curves and round joins are
// subdivided finely enough for that scale. A non-positive width yields an
// empty path.
func Stroke(src *geom.Path, st Style, resScale float64) *geom.Path {
	out := geom.NewPath()
	if !(st.Width > 0) || !isFinite(st.Width) {
		return out
	}
	if !(resScale > 0) || !isFinite(resScale) {
		resScale = 1
	}
	x := &expander{
		style:      st,
		out:        out,
		joinThresh: 2 * (1 / (wangs.Precision * resScale)) / st.Width,
	}
	for _, c := range flatten.Path(src, geom.Identity(), wangs.Precision*resScale) {
		x.contour(c)
	}
	return out
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// perp rotates v by 90 degrees counter-clockwise.
func perp(v geom.Point) geom.Point { return geom.Point{X: -v.Y, Y: v.X} }

type expander struct {
	style      Style
	out        *geom.Path
	joinThresh float64

	fwd, bwd []geom.Point

	startPt   geom.Point
	startNorm geom.Point
	startTan  geom.Point
	lastPt    geom.Point
	lastTan   geom.Point
	lastNorm  geom.Point
}

func (x *expander) contour(c flatten.Contour) {
	pts := make([]geom.Point, 0, len(c.Points))
	for _, p := range c.Points {
		if len(pts) == 0 || pts[len(pts)-1] != p {
			pts = append(pts, p)
		}
	}
	if len(pts) == 1 {
		if len(c.Points) > 1 || c.Closed {
			x.dot(pts[0])
		}
		return
	}

	x.fwd, x.bwd = x.fwd[:0], x.bwd[:0]
	x.startPt, x.lastPt = pts[0], pts[0]
	for _, p := range pts[1:] {
		x.lineTo(p)
	}
	if c.Closed {
		if x.lastPt != x.startPt {
			x.lineTo(x.startPt)
		}
		x.finishClosed()
		return
	}
	x.finishOpen()
}

// dot draws the cap of a zero-length contour. Butt caps draw nothing.
func (x *expander) dot(p geom.Point) {
	r := x.style.Width / 2
	switch x.style.Cap {
	case CapRound:
		x.out.AddCircle(p.X, p.Y, r, geom.Clockwise)
	case CapSquare:
		x.out.AddRect(geom.RectLTRB(p.X-r, p.Y-r, p.X+r, p.Y+r), geom.Clockwise)
	}
}

func (x *expander) lineTo(p geom.Point) {
	tan := p.Sub(x.lastPt)
	x.join(tan)
	x.lastTan = tan
	norm := perp(tan).Mul(0.5 * x.style.Width / tan.Length())
	x.fwd = append(x.fwd, p.Sub(norm))
	x.bwd = append(x.bwd, p.Add(norm))
	x.lastPt = p
	x.lastNorm = norm
}

func (x *expander) join(tan geom.Point) {
	norm := perp(tan).Mul(0.5 * x.style.Width / tan.Length())
	p0 := x.lastPt
	if len(x.fwd) == 0 {
		x.fwd = append(x.fwd, p0.Sub(norm))
		x.bwd = append(x.bwd, p0.Add(norm))
		x.startTan = tan
		x.startNorm = norm
		return
	}

	ab, cd := x.lastTan, tan
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly straight continuation: connect without a join.
	if dot > 0 && math.Abs(cross) < hypot*x.joinThresh {
		x.fwd = append(x.fwd, p0.Sub(norm))
		x.bwd = append(x.bwd, p0.Add(norm))
		return
	}

	lastNorm := perp(ab).Mul(0.5 * x.style.Width / ab.Length())
	switch x.style.Join {
	case JoinMiter:
		limit := x.style.MiterLimit * x.style.MiterLimit
		if 2*hypot < (hypot+dot)*limit {
			x.miter(p0, norm, lastNorm, ab, cd, cross)
		}
	case JoinRound:
		angle := math.Atan2(cross, dot)
		if angle > 0 {
			x.fwd = x.arc(x.fwd, p0, lastNorm.Mul(-1), angle)
		} else {
			x.bwd = x.arc(x.bwd, p0, lastNorm, angle)
		}
	}
	x.fwd = append(x.fwd, p0.Sub(norm))
	x.bwd = append(x.bwd, p0.Add(norm))
}

// miter adds the miter tip on the outer side of the turn and routes the inner
// side through the join point.
func (x *expander) miter(p0, norm, lastNorm, ab, cd geom.Point, cross float64) {
	if cross > 0 {
		last := p0.Sub(lastNorm)
		this := p0.Sub(norm)
		h := ab.Cross(this.Sub(last)) / cross
		x.fwd = append(x.fwd, this.Sub(cd.Mul(h)))
		x.bwd = append(x.bwd, p0)
	} else if cross < 0 {
		last := p0.Add(lastNorm)
		this := p0.Add(norm)
		h := ab.Cross(this.Sub(last)) / cross
		x.bwd = append(x.bwd, this.Sub(cd.Mul(h)))
		x.fwd = append(x.fwd, p0)
	}
}

// arc appends points on the circle around center starting at center+norm
// and sweeping angle radians, excluding the start point.
func (x *expander) arc(dst []geom.Point, center, norm geom.Point, angle float64) []geom.Point {
	r := norm.Length()
	n := arcSegments(r, math.Abs(angle), x.joinThresh*x.style.Width/2)
	a0 := math.Atan2(norm.Y, norm.X)
	for i := 1; i <= n; i++ {
		s, c := math.Sincos(a0 + angle*float64(i)/float64(n))
		dst = append(dst, geom.Point{X: center.X + r*c, Y: center.Y + r*s})
	}
	return dst
}

// arcSegments returns how many chords approximate an arc of radius r within
// tol.
func arcSegments(r, sweep, tol float64) int {
	if r <= tol || tol <= 0 {
		return max(1, int(math.Ceil(sweep/(math.Pi/2))))
	}
	step := 2 * math.Acos(1-tol/r)
	return min(max(1, int(math.Ceil(sweep/step))), 256)
}

func (x *expander) finishOpen() {
	x.out.MoveTo(x.fwd[0].X, x.fwd[0].Y)
	for _, p := range x.fwd[1:] {
		x.out.LineTo(p.X, p.Y)
	}
	x.cap(x.lastPt, x.lastNorm.Mul(-1))
	for i := len(x.bwd) - 1; i >= 0; i-- {
		x.out.LineTo(x.bwd[i].X, x.bwd[i].Y)
	}
	x.cap(x.startPt, x.startNorm)
	x.out.Close()
}

func (x *expander) finishClosed() {
	x.join(x.startTan)
	x.out.MoveTo(x.fwd[0].X, x.fwd[0].Y)
	for _, p := range x.fwd[1:] {
		x.out.LineTo(p.X, p.Y)
	}
	x.out.Close()
	last := x.bwd[len(x.bwd)-1]
	x.out.MoveTo(last.X, last.Y)
	for i := len(x.bwd) - 2; i >= 0; i-- {
		x.out.LineTo(x.bwd[i].X, x.bwd[i].Y)
	}
	x.out.Close()
}

// cap draws from center+norm around the end to center-norm.
func (x *expander) cap(center, norm geom.Point) {
	switch x.style.Cap {
	case CapRound:
		pts := x.arc(nil, center, norm, math.Pi)
		for _, p := range pts {
			x.out.LineTo(p.X, p.Y)
		}
	case CapSquare:
		// Extend by half the width along the outward tangent.
		ext := perp(norm)
		a := center.Add(norm).Add(ext)
		b := center.Sub(norm).Add(ext)
		x.out.LineTo(a.X, a.Y)
		x.out.LineTo(b.X, b.Y)
		c := center.Sub(norm)
		x.out.LineTo(c.X, c.Y)
	default:
		c := center.Sub(norm)
		x.out.LineTo(c.X, c.Y)
	}
}
