package maskfilter

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/flatten"
	"github.com/gogpu/pathcov/internal/wangs"
	"github.com/gogpu/pathcov/mask"
	"github.com/gogpu/pathcov/maskcache"
)

// maxShapeArea bounds the blurred mask of the direct routes, in pixels.
// Larger shapes go through the general path.
const maxShapeArea = 1 << 22

// FilterRRect rasterizes and blurs a device-space rounded rect.
func (b *Blur) FilterRRect(rr geom.RRect, m geom.Matrix, clip geom.IRect) (pathcov.FilteredMask, pathcov.FilterResult) {
	sigma := b.DeviceSigma(m)
	shape := rr.Rect.RoundOut()
	res := b.checkShape(shape, sigma, clip)
	if res != pathcov.FilterTrue {
		return pathcov.FilteredMask{}, res
	}
	key := float32(sigma)
	if b.Cache != nil {
		if data, cached := b.Cache.FindAndRefRRect(key, b.Style, rr); data != nil {
			pathcov.Logger().Debug("maskfilter: rrect cache hit", "bounds", cached.Bounds)
			return pathcov.NewFilteredMask(cached, data.Unref), pathcov.FilterTrue
		}
	}

	path := geom.NewPath()
	path.AddRRect(rr, geom.Clockwise)
	out, ok := b.blurShape(path, shape, m)
	if !ok {
		return pathcov.FilteredMask{}, pathcov.FilterUnimplemented
	}
	if b.Cache == nil {
		return pathcov.NewFilteredMask(out, nil), pathcov.FilterTrue
	}
	data := maskcache.NewCachedDataFrom(out.Image)
	b.Cache.AddRRect(key, b.Style, rr, out, data)
	return pathcov.NewFilteredMask(out, data.Unref), pathcov.FilterTrue
}

// FilterRects rasterizes and blurs one rect or an outer rect with a hole.
// Other rect counts are declined.
func (b *Blur) FilterRects(rects []geom.Rect, m geom.Matrix, clip geom.IRect) (pathcov.FilteredMask, pathcov.FilterResult) {
	if len(rects) != 1 && len(rects) != 2 {
		return pathcov.FilteredMask{}, pathcov.FilterUnimplemented
	}
	sigma := b.DeviceSigma(m)
	shape := rects[0].RoundOut()
	res := b.checkShape(shape, sigma, clip)
	if res != pathcov.FilterTrue {
		return pathcov.FilteredMask{}, res
	}
	key := float32(sigma)
	if b.Cache != nil {
		if data, cached := b.Cache.FindAndRefRects(key, b.Style, rects); data != nil {
			pathcov.Logger().Debug("maskfilter: rects cache hit", "bounds", cached.Bounds)
			return pathcov.NewFilteredMask(cached.Offset(shape.Left, shape.Top), data.Unref), pathcov.FilterTrue
		}
	}

	path := geom.NewPath()
	path.AddRect(rects[0], geom.Clockwise)
	if len(rects) == 2 {
		path.AddRect(rects[1], geom.CounterClockwise)
	}
	out, ok := b.blurShape(path, shape, m)
	if !ok {
		return pathcov.FilteredMask{}, pathcov.FilterUnimplemented
	}
	if b.Cache == nil {
		return pathcov.NewFilteredMask(out, nil), pathcov.FilterTrue
	}
	data := maskcache.NewCachedDataFrom(out.Image)
	// Cached rects masks are stored relative to the shape's origin.
	b.Cache.AddRects(key, b.Style, rects, out.Offset(-shape.Left, -shape.Top), data)
	return pathcov.NewFilteredMask(out, data.Unref), pathcov.FilterTrue
}

// checkShape decides whether a shape with integer bounds shape can take a
// direct route. It returns FilterTrue to proceed.
func (b *Blur) checkShape(shape geom.IRect, sigma float64, clip geom.IRect) pathcov.FilterResult {
	if !(sigma > 0) || shape.IsEmpty() {
		return pathcov.FilterUnimplemented
	}
	pad := KernelRadius(sigma)
	blurred := shape.Outset(pad, pad)
	if b.Style == pathcov.BlurInner {
		blurred = shape
	}
	if !blurred.Intersects(clip) {
		return pathcov.FilterFalse
	}
	if blurred.Width64()*blurred.Height64() > maxShapeArea {
		pathcov.Logger().Debug("maskfilter: shape too large", "bounds", blurred)
		return pathcov.FilterUnimplemented
	}
	return pathcov.FilterTrue
}

// blurShape rasterizes the device-space path into a mask with bounds shape
// and blurs it.
func (b *Blur) blurShape(path *geom.Path, shape geom.IRect, m geom.Matrix) (mask.Mask, bool) {
	src := mask.NewBuilder(shape, mask.A8)
	defer src.Release()
	if err := src.AllocImage(); err != nil {
		pathcov.Logger().Debug("maskfilter: shape alloc failed", "bounds", shape, "err", err)
		return mask.Mask{}, false
	}
	rasterize(src.Mask(), path)

	var dst mask.Builder
	if !b.FilterMask(&dst, *src.Mask(), m, nil) {
		dst.Release()
		return mask.Mask{}, false
	}
	return dst.Finalize(), true
}

// rasterize fills path with nonzero winding into the A8 mask m.
func rasterize(m *mask.Mask, path *geom.Path) {
	w, h := m.Bounds.Width(), m.Bounds.Height()
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	toMask := geom.Translate(float64(-m.Bounds.Left), float64(-m.Bounds.Top))
	for _, c := range flatten.Path(path, toMask, wangs.Precision) {
		if len(c.Points) < 2 {
			continue
		}
		z.MoveTo(float32(c.Points[0].X), float32(c.Points[0].Y))
		for _, p := range c.Points[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	}
	dst := &image.Alpha{Pix: m.Image, Stride: m.RowBytes, Rect: image.Rect(0, 0, w, h)}
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
}
