package scan

import (
	"math"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/flatten"
	"github.com/gogpu/pathcov/internal/wangs"
)

// Cap selects how the open ends of a hairline are extended.
type Cap uint8

// Hairline caps.
const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Round caps cover a disc of radius 0.5; 0.39 approximates its mean extent.
const (
	capExtendRound  = 0.39
	capExtendSquare = 0.5
)

// maxHairCoord bounds hairline coordinates so 26.6 math cannot overflow.
const maxHairCoord = 32767.0

type segment [2]geom.Point

// hairSegments flattens p into line segments with cap extensions applied to
// the ends of open contours. A zero-length contour with a cap becomes a short
// horizontal dash so it still produces a dot.
func hairSegments(p *geom.Path, c Cap) []segment {
	ext := 0.0
	switch c {
	case CapRound:
		ext = capExtendRound
	case CapSquare:
		ext = capExtendSquare
	}
	var segs []segment
	for _, ct := range flatten.Path(p, geom.Identity(), wangs.Precision) {
		pts := ct.Points
		n := len(pts)
		if ct.Closed && n > 1 && pts[n-1] != pts[0] {
			pts = append(pts[:n:n], pts[0])
			n++
		}
		if degenerate(pts) {
			if ext > 0 {
				p := pts[0]
				segs = append(segs, segment{geom.Pt(p.X-ext, p.Y), geom.Pt(p.X+ext, p.Y)})
			}
			continue
		}
		first := len(segs)
		for i := 1; i < n; i++ {
			if pts[i] != pts[i-1] {
				segs = append(segs, segment{pts[i-1], pts[i]})
			}
		}
		if ext > 0 && !ct.Closed {
			s := &segs[first]
			s[0] = s[0].Sub(s[1].Sub(s[0]).Normalize().Mul(ext))
			e := &segs[len(segs)-1]
			e[1] = e[1].Add(e[1].Sub(e[0]).Normalize().Mul(ext))
		}
	}
	return segs
}

func degenerate(pts []geom.Point) bool {
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}

// clipToSafeRange clamps s into the fixed-point range, reporting false when
// the segment lies entirely beyond one side of it.
func clipToSafeRange(s *segment) bool {
	const bound = maxHairCoord - 1
	a, b := s[0], s[1]
	if (a.X < -bound && b.X < -bound) || (a.X > bound && b.X > bound) ||
		(a.Y < -bound && b.Y < -bound) || (a.Y > bound && b.Y > bound) {
		return false
	}
	for i := range s {
		s[i].X = min(max(s[i].X, -bound), bound)
		s[i].Y = min(max(s[i].Y, -bound), bound)
	}
	return true
}

// touches reports whether the pixels around s can intersect clip.
func touches(s segment, clip geom.IRect) bool {
	b := geom.BoundsOf(s[:]).Outset(1, 1)
	return b.Right >= float64(clip.Left) && b.Left <= float64(clip.Right) &&
		b.Bottom >= float64(clip.Top) && b.Top <= float64(clip.Bottom)
}

// HairPath draws p as one pixel wide aliased lines. Each segment covers the
// pixels whose centers its major axis passes through.
func HairPath(p *geom.Path, c Cap, clip geom.IRect, b Blitter) {
	if clip.IsEmpty() {
		return
	}
	cb := NewClipBlitter(b, clip)
	for _, s := range hairSegments(p, c) {
		if clipToSafeRange(&s) && touches(s, clip) {
			hairLine(s[0], s[1], cb)
		}
	}
}

func centerIndex(v float64) int {
	return int(math.Ceil(v - 0.5))
}

func hairLine(p0, p1 geom.Point, b Blitter) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			p0, p1 = p1, p0
		}
		slope := (p1.Y - p0.Y) / (p1.X - p0.X)
		runX, runY, runW := 0, 0, 0
		for x := centerIndex(p0.X); x < centerIndex(p1.X); x++ {
			y := int(math.Floor(p0.Y + (float64(x)+0.5-p0.X)*slope))
			if runW > 0 && y == runY {
				runW++
				continue
			}
			if runW > 0 {
				b.BlitH(runX, runY, runW)
			}
			runX, runY, runW = x, y, 1
		}
		if runW > 0 {
			b.BlitH(runX, runY, runW)
		}
		return
	}
	if dy < 0 {
		p0, p1 = p1, p0
	}
	slope := (p1.X - p0.X) / (p1.Y - p0.Y)
	runX, runY, runH := 0, 0, 0
	for y := centerIndex(p0.Y); y < centerIndex(p1.Y); y++ {
		x := int(math.Floor(p0.X + (float64(y)+0.5-p0.Y)*slope))
		if runH > 0 && x == runX {
			runH++
			continue
		}
		if runH > 0 {
			b.BlitV(runX, runY, runH, 0xFF)
		}
		runX, runY, runH = x, y, 1
	}
	if runH > 0 {
		b.BlitV(runX, runY, runH, 0xFF)
	}
}

// AntiHairPath draws p as anti-aliased one pixel wide lines.
func AntiHairPath(p *geom.Path, c Cap, clip geom.IRect, b Blitter) {
	if clip.IsEmpty() {
		return
	}
	cb := NewClipBlitter(b, clip)
	for _, s := range hairSegments(p, c) {
		if clipToSafeRange(&s) && touches(s, clip) {
			antiHairline(cb, toFDot6(s[0].X), toFDot6(s[0].Y), toFDot6(s[1].X), toFDot6(s[1].Y))
		}
	}
}
