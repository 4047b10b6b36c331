package raster

import (
	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/mask"
)

// MaxMaskMargin caps the filter margin added around the clip when sizing a
// mask.
const MaxMaskMargin = 128

// CreateMode selects what DrawToMask produces.
type CreateMode uint8

const (
	// JustComputeBounds sets the mask bounds only.
	JustComputeBounds CreateMode = iota
	// JustRenderImage renders into a mask whose bounds and image are set.
	JustRenderImage
	// ComputeBoundsAndRenderImage sets the bounds, allocates and renders.
	ComputeBoundsAndRenderImage
)

// InitStyle is how a device path is rasterized into a mask.
type InitStyle uint8

const (
	// InitFill fills the path.
	InitFill InitStyle = iota
	// InitHairline draws the path as a hairline.
	InitHairline
)

// ComputeMaskBounds returns the A8 mask bounds for a device path with the
// given bounds: the path bounds rounded out, grown by the filter's margin,
// and trimmed to clip plus that margin. The margin is capped at
// MaxMaskMargin. It reports false when the filter rejects the mask or
// nothing remains.
func ComputeMaskBounds(devPathBounds geom.Rect, clip geom.IRect, filter pathcov.MaskFilter, filterMatrix *geom.Matrix) (geom.IRect, bool) {
	bounds := devPathBounds.Outset(0.5, 0.5).RoundOut()
	var margin geom.IPoint
	if filter != nil {
		m := geom.Identity()
		if filterMatrix != nil {
			m = *filterMatrix
		}
		var dst mask.Builder
		if !filter.FilterMask(&dst, mask.New(bounds, mask.A8), m, &margin) {
			return geom.IRect{}, false
		}
	}
	mx := min(margin.X, MaxMaskMargin)
	my := min(margin.Y, MaxMaskMargin)
	return bounds.Intersect(clip.Outset(mx, my))
}

// DrawToMask rasterizes a device-space path into an A8 mask. Depending on
// mode it sizes dst from the path, clip and filter margin, allocates its
// image, and renders with antialiasing. Inverse fills cover the clip plus
// the largest margin a filter may request. It reports false when the path is
// empty or the mask would be empty or too large.
func DrawToMask(devPath *geom.Path, clipBounds geom.IRect, filter pathcov.MaskFilter, filterMatrix *geom.Matrix, dst *mask.Builder, mode CreateMode, style InitStyle) bool {
	if devPath.IsEmpty() {
		return false
	}
	if mode != JustRenderImage {
		pathBounds := devPath.Bounds()
		if devPath.IsInverseFillType() {
			pathBounds = clipBounds.Outset(MaxMaskMargin, MaxMaskMargin).ToRect()
		}
		bounds, ok := ComputeMaskBounds(pathBounds, clipBounds, filter, filterMatrix)
		if !ok {
			return false
		}
		dst.SetBounds(bounds, mask.A8)
	}
	if mode == ComputeBoundsAndRenderImage {
		if err := dst.AllocImage(); err != nil {
			pathcov.Logger().Debug("raster: mask not allocated", "bounds", dst.Bounds(), "err", err)
			return false
		}
	}
	if mode != JustComputeBounds {
		drawIntoMask(*dst.Mask(), devPath, style)
	}
	return true
}

// drawIntoMask renders devPath into m with a nested DrawBase whose clip is
// the mask and whose transform moves the mask origin to (0, 0).
func drawIntoMask(m mask.Mask, devPath *geom.Path, style InitStyle) {
	b := m.Bounds
	local := m.Offset(-b.Left, -b.Top)
	draw := DrawBase{
		Clip:    geom.IRectWH(b.Width(), b.Height()),
		CTM:     geom.Translate(-float64(b.Left), -float64(b.Top)),
		Chooser: A8Chooser{Dst: &local},
	}
	p := pathcov.NewPaint()
	if style == InitHairline {
		p.Style = pathcov.StyleStroke
		p.StrokeWidth = 0
	}
	draw.DrawPath(devPath, p, nil, false, false, nil)
}

// filterPath draws devPath through filter. Rect and nested rect fills try
// the filter's rects fast path first; otherwise the path is rendered with
// DrawToMask, filtered and blitted through the clip. It reports false when
// the filter could not process the path.
func (d *DrawBase) filterPath(devPath *geom.Path, filter pathcov.MaskFilter, b Blitter, style InitStyle) bool {
	if rf, ok := filter.(pathcov.RectsMaskFilter); ok && style == InitFill {
		if rects := nestedRects(devPath); rects != nil {
			fm, res := rf.FilterRects(rects, d.CTM, d.Clip)
			switch res {
			case pathcov.FilterTrue:
				pathcov.Logger().Debug("raster: rects mask filter fast path", "rects", len(rects))
				d.blitMask(fm.Mask, b)
				fm.Release()
				return true
			case pathcov.FilterFalse:
				return true
			}
		}
	}

	var src mask.Builder
	if !DrawToMask(devPath, d.Clip, filter, &d.CTM, &src, ComputeBoundsAndRenderImage, style) {
		return false
	}
	defer src.Release()

	var dst mask.Builder
	if !filter.FilterMask(&dst, *src.Mask(), d.CTM, nil) {
		return false
	}
	defer dst.Release()
	d.blitMask(*dst.Mask(), b)
	return true
}

func (d *DrawBase) blitMask(m mask.Mask, b Blitter) {
	if clip, ok := d.Clip.Intersect(m.Bounds); ok {
		b.BlitMask(m, clip)
	}
}

// nestedRects returns the rects of a path that is one rect or two nested
// rects, outer first, or nil.
func nestedRects(p *geom.Path) []geom.Rect {
	if rr, ok := p.IsNestedFillRects(); ok {
		return rr[:]
	}
	if r, ok := p.IsRect(); ok {
		return []geom.Rect{r}
	}
	return nil
}
