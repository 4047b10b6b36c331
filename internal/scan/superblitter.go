package scan

import "github.com/gogpu/pathcov/geom"

const (
	superShift = 2
	superScale = 1 << superShift
	superMask  = superScale - 1
)

// superBlitter collects spans on a 4x supersampled grid and forwards each
// finished pixel row to a Blitter as one BlitAntiH call.
type superBlitter struct {
	b    Blitter
	runs *alphaRuns

	left, width int
	superLeft   int
	top         int

	currIY  int
	currY   int
	offsetX int
}

// newSuperBlitter returns nil when bounds and clip do not overlap.
func newSuperBlitter(b Blitter, bounds, clip geom.IRect) *superBlitter {
	r, ok := bounds.Intersect(clip)
	if !ok {
		return nil
	}
	return &superBlitter{
		b:         b,
		runs:      newAlphaRuns(r.Width()),
		left:      r.Left,
		width:     r.Width(),
		superLeft: r.Left << superShift,
		top:       r.Top,
		currIY:    r.Top - 1,
		currY:     r.Top<<superShift - 1,
	}
}

// blitH adds the supersampled span [x, x+width) of sample row y. Spans of one
// sample row must arrive in increasing x.
func (sb *superBlitter) blitH(x, y, width int) {
	if x < sb.superLeft {
		width -= sb.superLeft - x
		x = sb.superLeft
	}
	width = min(width, (sb.left+sb.width)<<superShift-x)
	if width <= 0 {
		return
	}
	iy := y >> superShift
	x -= sb.superLeft

	if sb.currY != y {
		sb.offsetX = 0
		sb.currY = y
	}
	if iy != sb.currIY {
		sb.flush()
		sb.currIY = iy
	}

	start, stop := x, x+width
	fb, fe := start&superMask, stop&superMask
	n := stop>>superShift - start>>superShift - 1
	if n < 0 {
		fb = fe - fb
		n = 0
		fe = 0
	} else if fb == 0 {
		n++
	} else {
		fb = superScale - fb
	}

	// Four full sample rows sum to 255, not 256.
	maxValue := uint8(1<<(8-superShift) - ((y&superMask)+1)>>superShift)
	sb.offsetX = sb.runs.add(start>>superShift, partialAlpha(fb), n, partialAlpha(fe), maxValue, sb.offsetX)
}

func (sb *superBlitter) flush() {
	if sb.currIY < sb.top {
		return
	}
	if !sb.runs.isEmpty() {
		sb.b.BlitAntiH(sb.left, sb.currIY, sb.runs.alpha, sb.runs.runs)
		sb.runs.reset(sb.width)
		sb.offsetX = 0
	}
	sb.currIY = sb.top - 1
}

// partialAlpha scales a sub-pixel sample count of one sample row.
func partialAlpha(samples int) uint8 {
	return uint8(samples << (8 - 2*superShift))
}
