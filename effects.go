package pathcov

import (
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/mask"
)

// PathEffect rewrites geometry before it is stroked or filled.
type PathEffect interface {
	// FilterPath appends the effect's output for src to dst and may update
	// rec. cull, when non-nil, bounds the local-space region that can become
	// visible; output outside it may be dropped. It reports false when the
	// effect produced nothing and src should be used unchanged.
	FilterPath(dst, src *geom.Path, rec *StrokeRec, cull *geom.Rect, m geom.Matrix) bool
}

// PointFlags qualify PointData.
type PointFlags uint8

const (
	// PointCircles marks the points as circles of diameter 2*Size.X.
	PointCircles PointFlags = 1 << iota
)

// PointData is a path effect's output expressed as uniform dots.
type PointData struct {
	Flags PointFlags
	// Points are the dot centers in local space.
	Points []geom.Point
	// Size holds the half extents of each dot along x and y.
	Size geom.Point
	// First and Last hold partial dashes at the ends of the line, to be
	// stroked with the original stroke settings. Either may be nil.
	First, Last *geom.Path
}

// PointsPathEffect is a PathEffect that can describe its output for some
// inputs as dots, which draw much faster than outlines.
type PointsPathEffect interface {
	PathEffect
	AsPoints(results *PointData, src *geom.Path, rec *StrokeRec, m geom.Matrix, cull *geom.Rect) bool
}

// BlurStyle selects which part of a blurred mask is kept.
type BlurStyle uint8

const (
	// BlurNormal keeps the blur inside and outside the shape.
	BlurNormal BlurStyle = iota
	// BlurSolid keeps the shape solid and the blur outside it.
	BlurSolid
	// BlurOuter keeps only the blur outside the shape.
	BlurOuter
	// BlurInner keeps only the blur inside the shape.
	BlurInner
)

// String returns the style name.
func (s BlurStyle) String() string {
	switch s {
	case BlurNormal:
		return "Normal"
	case BlurSolid:
		return "Solid"
	case BlurOuter:
		return "Outer"
	case BlurInner:
		return "Inner"
	default:
		return "BlurStyle(?)"
	}
}

// MaskFilter transforms a coverage mask, for example by blurring it.
type MaskFilter interface {
	// Format is the format of the masks the filter produces.
	Format() mask.Format
	// FilterMask computes dst from src under matrix m. When src has no
	// image only dst's bounds are computed. margin, when non-nil, receives
	// how far dst extends past src on each side. It reports false when the
	// filter cannot handle src.
	FilterMask(dst *mask.Builder, src mask.Mask, m geom.Matrix, margin *geom.IPoint) bool
}

// FilterResult is the outcome of a shape-specific mask filter fast path.
type FilterResult uint8

const (
	// FilterFalse means the filtered shape leaves nothing to draw.
	FilterFalse FilterResult = iota
	// FilterTrue means a filtered mask was produced.
	FilterTrue
	// FilterUnimplemented means the filter declined; use the general path.
	FilterUnimplemented
)

// FilteredMask is a mask returned by a filter fast path. Release must be
// called once the mask has been blitted.
type FilteredMask struct {
	Mask    mask.Mask
	release func()
}

// NewFilteredMask wraps m with the function that frees it.
func NewFilteredMask(m mask.Mask, release func()) FilteredMask {
	return FilteredMask{Mask: m, release: release}
}

// Release frees the mask's storage.
func (f *FilteredMask) Release() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
	f.Mask.Image = nil
}

// RRectMaskFilter is a MaskFilter with a direct path for rounded rects.
type RRectMaskFilter interface {
	MaskFilter
	// FilterRRect rasterizes and filters a device-space rrect in one step.
	FilterRRect(devRRect geom.RRect, m geom.Matrix, clip geom.IRect) (FilteredMask, FilterResult)
}

// RectsMaskFilter is a MaskFilter with a direct path for one rect or two
// nested rects.
type RectsMaskFilter interface {
	MaskFilter
	// FilterRects rasterizes and filters device-space rects in one step.
	// Two rects are outer then inner, filled even-odd.
	FilterRects(devRects []geom.Rect, m geom.Matrix, clip geom.IRect) (FilteredMask, FilterResult)
}
