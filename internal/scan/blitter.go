package scan

import (
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/mask"
)

// Blitter receives coverage from the scan converters.
//
// BlitAntiH takes a run-length encoded row starting at x: runs[0] is the
// length of the first run, its coverage is alpha[0], the next run starts at
// index runs[0], and a zero run length terminates the row.
type Blitter interface {
	BlitH(x, y, width int)
	BlitAntiH(x, y int, alpha []uint8, runs []uint16)
	BlitV(x, y, height int, alpha uint8)
	BlitRect(x, y, width, height int)
	// BlitAntiH2 covers (x, y) with a0 and (x+1, y) with a1.
	BlitAntiH2(x, y int, a0, a1 uint8)
	// BlitAntiV2 covers (x, y) with a0 and (x, y+1) with a1.
	BlitAntiV2(x, y int, a0, a1 uint8)
	BlitMask(m mask.Mask, clip geom.IRect)
}

// PixelSink accumulates coverage into a destination one pixel at a time.
type PixelSink interface {
	BlendCoverage(x, y int, alpha uint8)
}

// SpanSink is implemented by sinks that blend a horizontal span at once.
type SpanSink interface {
	PixelSink
	BlendSpan(x, y, width int, alpha uint8)
}

// CoverageBlitter adapts a PixelSink to the Blitter interface.
type CoverageBlitter struct {
	Sink PixelSink
}

var _ Blitter = CoverageBlitter{}

func (c CoverageBlitter) span(x, y, width int, alpha uint8) {
	if alpha == 0 || width <= 0 {
		return
	}
	if s, ok := c.Sink.(SpanSink); ok {
		s.BlendSpan(x, y, width, alpha)
		return
	}
	for i := range width {
		c.Sink.BlendCoverage(x+i, y, alpha)
	}
}

// BlitH covers width pixels of row y fully.
func (c CoverageBlitter) BlitH(x, y, width int) { c.span(x, y, width, 0xFF) }

// BlitAntiH blends a run-length encoded row.
func (c CoverageBlitter) BlitAntiH(x, y int, alpha []uint8, runs []uint16) {
	for i := 0; i < len(runs) && runs[i] > 0; i += int(runs[i]) {
		c.span(x+i, y, int(runs[i]), alpha[i])
	}
}

// BlitV blends a column of height pixels.
func (c CoverageBlitter) BlitV(x, y, height int, alpha uint8) {
	if alpha == 0 {
		return
	}
	for i := range height {
		c.Sink.BlendCoverage(x, y+i, alpha)
	}
}

// BlitRect covers a rectangle fully.
func (c CoverageBlitter) BlitRect(x, y, width, height int) {
	for i := range height {
		c.span(x, y+i, width, 0xFF)
	}
}

// BlitAntiH2 blends two horizontally adjacent pixels.
func (c CoverageBlitter) BlitAntiH2(x, y int, a0, a1 uint8) {
	if a0 != 0 {
		c.Sink.BlendCoverage(x, y, a0)
	}
	if a1 != 0 {
		c.Sink.BlendCoverage(x+1, y, a1)
	}
}

// BlitAntiV2 blends two vertically adjacent pixels.
func (c CoverageBlitter) BlitAntiV2(x, y int, a0, a1 uint8) {
	if a0 != 0 {
		c.Sink.BlendCoverage(x, y, a0)
	}
	if a1 != 0 {
		c.Sink.BlendCoverage(x, y+1, a1)
	}
}

// BlitMask blends the coverage of m restricted to clip.
func (c CoverageBlitter) BlitMask(m mask.Mask, clip geom.IRect) {
	r, ok := m.Bounds.Intersect(clip)
	if !ok {
		return
	}
	for y := r.Top; y < r.Bottom; y++ {
		for x := r.Left; x < r.Right; x++ {
			if a := m.AlphaAt(x, y); a != 0 {
				c.Sink.BlendCoverage(x, y, a)
			}
		}
	}
}

// blitAlphaH blends a span with uniform coverage through b.
func blitAlphaH(b Blitter, x, y, width int, alpha uint8) {
	switch {
	case width <= 0 || alpha == 0:
	case alpha == 0xFF:
		b.BlitH(x, y, width)
	default:
		var rb runBuilder
		rb.add(alpha, width)
		b.BlitAntiH(x, y, rb.alpha, rb.runs())
	}
}

// ClipBlitter drops every pixel outside Clip before forwarding to B.
type ClipBlitter struct {
	B    Blitter
	Clip geom.IRect
}

var _ Blitter = (*ClipBlitter)(nil)

// NewClipBlitter returns b wrapped so that nothing outside clip reaches it.
func NewClipBlitter(b Blitter, clip geom.IRect) *ClipBlitter {
	return &ClipBlitter{B: b, Clip: clip}
}

func (c *ClipBlitter) hspan(x, y, width int) (int, int, bool) {
	if y < c.Clip.Top || y >= c.Clip.Bottom {
		return 0, 0, false
	}
	l, r := max(x, c.Clip.Left), min(x+width, c.Clip.Right)
	return l, r - l, l < r
}

// BlitH forwards the visible part of the span.
func (c *ClipBlitter) BlitH(x, y, width int) {
	if l, w, ok := c.hspan(x, y, width); ok {
		c.B.BlitH(l, y, w)
	}
}

// BlitAntiH forwards the visible part of every run.
func (c *ClipBlitter) BlitAntiH(x, y int, alpha []uint8, runs []uint16) {
	if y < c.Clip.Top || y >= c.Clip.Bottom {
		return
	}
	if x >= c.Clip.Left && x+rowWidth(runs) <= c.Clip.Right {
		c.B.BlitAntiH(x, y, alpha, runs)
		return
	}
	for i := 0; i < len(runs) && runs[i] > 0; i += int(runs[i]) {
		if l, w, ok := c.hspan(x+i, y, int(runs[i])); ok {
			blitAlphaH(c.B, l, y, w, alpha[i])
		}
	}
}

// BlitV forwards the visible part of the column.
func (c *ClipBlitter) BlitV(x, y, height int, alpha uint8) {
	if x < c.Clip.Left || x >= c.Clip.Right {
		return
	}
	t, b := max(y, c.Clip.Top), min(y+height, c.Clip.Bottom)
	if t < b {
		c.B.BlitV(x, t, b-t, alpha)
	}
}

// BlitRect forwards the visible part of the rectangle.
func (c *ClipBlitter) BlitRect(x, y, width, height int) {
	if r, ok := geom.IRectLTRB(x, y, x+width, y+height).Intersect(c.Clip); ok {
		c.B.BlitRect(r.Left, r.Top, r.Width(), r.Height())
	}
}

// BlitAntiH2 forwards the visible pixels of the pair.
func (c *ClipBlitter) BlitAntiH2(x, y int, a0, a1 uint8) {
	in0, in1 := c.Clip.ContainsXY(x, y), c.Clip.ContainsXY(x+1, y)
	switch {
	case in0 && in1:
		c.B.BlitAntiH2(x, y, a0, a1)
	case in0:
		blitAlphaH(c.B, x, y, 1, a0)
	case in1:
		blitAlphaH(c.B, x+1, y, 1, a1)
	}
}

// BlitAntiV2 forwards the visible pixels of the pair.
func (c *ClipBlitter) BlitAntiV2(x, y int, a0, a1 uint8) {
	in0, in1 := c.Clip.ContainsXY(x, y), c.Clip.ContainsXY(x, y+1)
	switch {
	case in0 && in1:
		c.B.BlitAntiV2(x, y, a0, a1)
	case in0:
		c.B.BlitV(x, y, 1, a0)
	case in1:
		c.B.BlitV(x, y+1, 1, a1)
	}
}

// BlitMask narrows the mask clip.
func (c *ClipBlitter) BlitMask(m mask.Mask, clip geom.IRect) {
	if r, ok := clip.Intersect(c.Clip); ok {
		c.B.BlitMask(m, r)
	}
}

func rowWidth(runs []uint16) int {
	n := 0
	for i := 0; i < len(runs) && runs[i] > 0; i += int(runs[i]) {
		n += int(runs[i])
	}
	return n
}

// runBuilder assembles a run-length encoded row left to right.
type runBuilder struct {
	alpha []uint8
	lens  []uint16
	last  int
}

func (rb *runBuilder) reset() {
	rb.alpha = rb.alpha[:0]
	rb.lens = rb.lens[:0]
	rb.last = -1
}

func (rb *runBuilder) add(alpha uint8, n int) {
	if len(rb.lens) == 0 {
		rb.last = -1
	}
	for n > 0 {
		if rb.last >= 0 && rb.alpha[rb.last] == alpha && int(rb.lens[rb.last]) < 0xFFFF {
			grow := min(n, 0xFFFF-int(rb.lens[rb.last]))
			rb.lens[rb.last] += uint16(grow)
			rb.pad(grow)
			n -= grow
			continue
		}
		step := min(n, 0xFFFF)
		rb.last = len(rb.alpha)
		rb.alpha = append(rb.alpha, alpha)
		rb.lens = append(rb.lens, uint16(step))
		rb.pad(step - 1)
		n -= step
	}
}

// pad keeps alpha and lens index-aligned with pixel offsets.
func (rb *runBuilder) pad(n int) {
	for range n {
		rb.alpha = append(rb.alpha, 0)
		rb.lens = append(rb.lens, 0)
	}
}

// runs returns the run lengths with the terminating zero appended.
func (rb *runBuilder) runs() []uint16 {
	rb.alpha = append(rb.alpha, 0)
	rb.lens = append(rb.lens, 0)
	return rb.lens
}
