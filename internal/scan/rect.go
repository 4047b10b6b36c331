package scan

import (
	"math"

	"github.com/gogpu/pathcov/geom"
)

// FillRect fills r with each edge rounded to the nearest pixel boundary.
func FillRect(r geom.Rect, clip geom.IRect, b Blitter) {
	fillIRect(r.Round(), clip, b)
}

func fillIRect(r, clip geom.IRect, b Blitter) {
	if r, ok := r.Intersect(clip); ok {
		b.BlitRect(r.Left, r.Top, r.Width(), r.Height())
	}
}

// AntiFillRect fills r with exact per-pixel area coverage.
func AntiFillRect(r geom.Rect, clip geom.IRect, b Blitter) {
	antiCover(r.RoundOut(), clip, b, func(px, py float64) float64 {
		return rectArea(r, px, py)
	})
}

// FrameRect strokes r with a pen of strokeSize, mitered corners, without
// anti-aliasing. A pen at least as large as r fills the outset rect.
func FrameRect(r geom.Rect, strokeSize geom.Point, clip geom.IRect, b Blitter) {
	rx, ry := strokeSize.X/2, strokeSize.Y/2
	outer := r.Outset(rx, ry).Round()
	inner := r.Inset(rx, ry)
	if inner.IsEmpty() {
		fillIRect(outer, clip, b)
		return
	}
	in := inner.Round()
	fillIRect(geom.IRectLTRB(outer.Left, outer.Top, outer.Right, in.Top), clip, b)
	fillIRect(geom.IRectLTRB(outer.Left, in.Top, in.Left, in.Bottom), clip, b)
	fillIRect(geom.IRectLTRB(in.Right, in.Top, outer.Right, in.Bottom), clip, b)
	fillIRect(geom.IRectLTRB(outer.Left, in.Bottom, outer.Right, outer.Bottom), clip, b)
}

// AntiFrameRect is FrameRect with area coverage.
func AntiFrameRect(r geom.Rect, strokeSize geom.Point, clip geom.IRect, b Blitter) {
	rx, ry := strokeSize.X/2, strokeSize.Y/2
	outer := r.Outset(rx, ry)
	inner := r.Inset(rx, ry)
	if inner.IsEmpty() {
		AntiFillRect(outer, clip, b)
		return
	}
	antiCover(outer.RoundOut(), clip, b, func(px, py float64) float64 {
		return rectArea(outer, px, py) - rectArea(inner, px, py)
	})
}

// HairRect draws the one pixel wide outline of the pixels r touches.
func HairRect(r geom.Rect, clip geom.IRect, b Blitter) {
	ir := geom.IRectLTRB(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Floor(r.Right))+1, int(math.Floor(r.Bottom))+1)
	if ir.Width() <= 2 || ir.Height() <= 2 {
		fillIRect(ir, clip, b)
		return
	}
	fillIRect(geom.IRectLTRB(ir.Left, ir.Top, ir.Right, ir.Top+1), clip, b)
	fillIRect(geom.IRectLTRB(ir.Left, ir.Bottom-1, ir.Right, ir.Bottom), clip, b)
	fillIRect(geom.IRectLTRB(ir.Left, ir.Top+1, ir.Left+1, ir.Bottom-1), clip, b)
	fillIRect(geom.IRectLTRB(ir.Right-1, ir.Top+1, ir.Right, ir.Bottom-1), clip, b)
}

// AntiHairRect outlines r with a one pixel pen centered on its edges.
func AntiHairRect(r geom.Rect, clip geom.IRect, b Blitter) {
	AntiFrameRect(r, geom.Pt(1, 1), clip, b)
}

// rectArea returns the fraction of pixel (px, py) covered by r.
func rectArea(r geom.Rect, px, py float64) float64 {
	w := min(r.Right, px+1) - max(r.Left, px)
	h := min(r.Bottom, py+1) - max(r.Top, py)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// antiCover emits cover(x, y) for every pixel of bounds inside clip, one
// run-length encoded row at a time.
func antiCover(bounds, clip geom.IRect, b Blitter, cover func(px, py float64) float64) {
	area, ok := bounds.Intersect(clip)
	if !ok {
		return
	}
	var rb runBuilder
	for y := area.Top; y < area.Bottom; y++ {
		rb.reset()
		for x := area.Left; x < area.Right; x++ {
			rb.add(coverageToAlpha(cover(float64(x), float64(y))), 1)
		}
		b.BlitAntiH(area.Left, y, rb.alpha, rb.runs())
	}
}

func coverageToAlpha(c float64) uint8 {
	switch {
	case c <= 0:
		return 0
	case c >= 1:
		return 0xFF
	}
	return uint8(c*255 + 0.5)
}
