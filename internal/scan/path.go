package scan

import (
	"math"
	"slices"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/flatten"
	"github.com/gogpu/pathcov/internal/wangs"
)

// edge is a non-horizontal line segment oriented top to bottom.
type edge struct {
	x0, y0 float64
	y1     float64
	dxdy   float64
	dir    int
}

func newEdge(p0, p1 geom.Point) (edge, bool) {
	if p0.Y == p1.Y {
		return edge{}, false
	}
	dir := 1
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
		dir = -1
	}
	return edge{
		x0:   p0.X,
		y0:   p0.Y,
		y1:   p1.Y,
		dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
		dir:  dir,
	}, true
}

type crossing struct {
	x   float64
	dir int
}

// spanScanner produces the inside spans of a set of edges at sample rows.
type spanScanner struct {
	edges   []edge
	evenOdd bool
	inverse bool
	xs      []crossing
}

func newSpanScanner(p *geom.Path) (*spanScanner, geom.Rect) {
	contours := flatten.Path(p, geom.Identity(), wangs.Precision)
	s := &spanScanner{
		evenOdd: p.FillType().IsEvenOdd(),
		inverse: p.IsInverseFillType(),
	}
	var pts []geom.Point
	for _, e := range flatten.FillEdges(contours) {
		if ne, ok := newEdge(e.P0, e.P1); ok {
			s.edges = append(s.edges, ne)
			pts = append(pts, e.P0, e.P1)
		}
	}
	return s, geom.BoundsOf(pts)
}

// row calls emit for each inside span [x0, x1) along the line y, in sample
// units of size 1/scale. Spans are limited to [lo, hi) and arrive in
// increasing order.
func (s *spanScanner) row(y float64, scale float64, lo, hi int, emit func(x0, x1 int)) {
	s.xs = s.xs[:0]
	for _, e := range s.edges {
		if e.y0 <= y && y < e.y1 {
			s.xs = append(s.xs, crossing{x: e.x0 + (y-e.y0)*e.dxdy, dir: e.dir})
		}
	}
	slices.SortFunc(s.xs, func(a, b crossing) int {
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		}
		return 0
	})

	// A sample column is inside when its center lies in [x0, x1).
	sample := func(x float64) int {
		v := math.Ceil(x*scale - 0.5)
		return int(min(max(v, float64(lo)), float64(hi)))
	}
	next := lo
	out := func(a, b int) {
		if s.inverse {
			if a > next {
				emit(next, a)
			}
			next = max(next, b)
			return
		}
		if a < b {
			emit(a, b)
		}
	}

	winding := 0
	var start float64
	for _, c := range s.xs {
		inside := s.inside(winding)
		if s.evenOdd {
			winding ^= 1
		} else {
			winding += c.dir
		}
		switch nowInside := s.inside(winding); {
		case !inside && nowInside:
			start = c.x
		case inside && !nowInside:
			out(sample(start), sample(c.x))
		}
	}
	if s.inverse && next < hi {
		emit(next, hi)
	}
}

func (s *spanScanner) inside(winding int) bool {
	if s.evenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// FillPath fills a device-space path sampling pixel centers. Inverse fill
// types cover everything in clip outside the path.
func FillPath(p *geom.Path, clip geom.IRect, b Blitter) {
	if clip.IsEmpty() {
		return
	}
	s, bounds := newSpanScanner(p)
	rows := clip
	if !s.inverse {
		r, ok := bounds.RoundOut().Intersect(clip)
		if !ok {
			return
		}
		rows = r
	}
	for y := rows.Top; y < rows.Bottom; y++ {
		s.row(float64(y)+0.5, 1, clip.Left, clip.Right, func(x0, x1 int) {
			b.BlitH(x0, y, x1-x0)
		})
	}
}

// AntiFillPath fills a device-space path with 16 samples per pixel.
func AntiFillPath(p *geom.Path, clip geom.IRect, b Blitter) {
	if clip.IsEmpty() {
		return
	}
	s, bounds := newSpanScanner(p)
	rows := clip
	if !s.inverse {
		rows = bounds.RoundOut()
	}
	area, ok := rows.Intersect(clip)
	if !ok {
		return
	}
	sb := newSuperBlitter(b, area, clip)
	lo, hi := area.Left<<superShift, area.Right<<superShift
	for sy := area.Top << superShift; sy < area.Bottom<<superShift; sy++ {
		y := (float64(sy) + 0.5) / superScale
		s.row(y, superScale, lo, hi, func(x0, x1 int) {
			sb.blitH(x0, sy, x1-x0)
		})
	}
	sb.flush()
}
