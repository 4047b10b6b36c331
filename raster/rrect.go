package raster

import (
	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
)

// rrectRoute is how DrawRRect handles one rounded rect.
type rrectRoute uint8

const (
	// rrectAsPath draws the rrect's outline through DrawPath.
	rrectAsPath rrectRoute = iota
	// rrectBlitMask blits a mask produced by the mask filter.
	rrectBlitMask
	// rrectSkip draws nothing.
	rrectSkip
)

// DrawRRect draws a rounded rect. Fills with an RRectMaskFilter are filtered
// directly from the device-space rrect; everything else becomes a path.
func (d *DrawBase) DrawRRect(rr geom.RRect, p *pathcov.Paint) {
	if d.Clip.IsEmpty() {
		return
	}
	route, fm := d.routeRRect(rr, p)
	switch route {
	case rrectBlitMask:
		b := d.Chooser.Choose(p, false)
		if clip, ok := d.Clip.Intersect(fm.Mask.Bounds); ok {
			b.BlitMask(fm.Mask, clip)
		}
		fm.Release()
	case rrectAsPath:
		d.DrawPath(rr.Path(), p, nil, true, false, nil)
	}
}

// routeRRect decides how rr is drawn. With rrectBlitMask the returned mask
// must be released by the caller.
func (d *DrawBase) routeRRect(rr geom.RRect, p *pathcov.Paint) (rrectRoute, pathcov.FilteredMask) {
	if _, ok := TreatAsHairline(p, d.CTM); ok {
		return rrectAsPath, pathcov.FilteredMask{}
	}
	if p.PathEffect != nil || p.Style != pathcov.StyleFill {
		return rrectAsPath, pathcov.FilteredMask{}
	}
	f, ok := p.MaskFilter.(pathcov.RRectMaskFilter)
	if !ok {
		return rrectAsPath, pathcov.FilteredMask{}
	}
	devRR, ok := rr.Transform(d.CTM)
	if !ok {
		return rrectAsPath, pathcov.FilteredMask{}
	}
	fm, res := f.FilterRRect(devRR, d.CTM, d.Clip)
	switch res {
	case pathcov.FilterTrue:
		pathcov.Logger().Debug("raster: rrect mask filter fast path", "bounds", fm.Mask.Bounds)
		return rrectBlitMask, fm
	case pathcov.FilterFalse:
		return rrectSkip, pathcov.FilteredMask{}
	default:
		return rrectAsPath, pathcov.FilteredMask{}
	}
}
