package raster

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/scan"
)

// MaxDrawCoord is the largest device coordinate the rasterizer accepts.
// Geometry reaching past it is dropped.
const MaxDrawCoord = float64(1 << 30)

// MaxPathPoints is the point count above which device paths are dropped in
// builds with the fuzzhardening tag.
const MaxPathPoints = 1000

// maxFixedCoord bounds coordinates the rect scan converters take as 26.6
// fixed point.
var maxFixedCoord = float64(fixed.Int26_6(math.MaxInt32).Floor())

// Device receives shapes the rasterizer hands back to a higher level
// drawing surface.
type Device interface {
	DrawOval(oval geom.Rect, p *pathcov.Paint)
}

// DrawBase rasterizes shapes through CTM into Clip. A zero Clip draws
// nothing.
type DrawBase struct {
	Clip    geom.IRect
	CTM     geom.Matrix
	Chooser BlitterChooser
}

// DrawPaint covers the whole clip with p.
func (d *DrawBase) DrawPaint(p *pathcov.Paint) {
	if d.Clip.IsEmpty() {
		return
	}
	b := d.Chooser.Choose(p, false)
	b.BlitRect(d.Clip.Left, d.Clip.Top, d.Clip.Width(), d.Clip.Height())
}

// DrawRect draws prePaintRect. When paintMatrix is non-nil the rect is first
// transformed by it, and postPaintRect may hold the rect already mapped by
// paintMatrix.
func (d *DrawBase) DrawRect(prePaintRect geom.Rect, p *pathcov.Paint, paintMatrix *geom.Matrix, postPaintRect *geom.Rect) {
	if d.Clip.IsEmpty() {
		return
	}
	m := d.CTM
	if paintMatrix != nil {
		m = m.Multiply(*paintMatrix)
	}
	rtype, strokeSize := ComputeRectType(prePaintRect, p, m)
	if rtype == RectPath {
		d.drawRectAsPath(prePaintRect, p, m)
		return
	}

	local := prePaintRect
	if paintMatrix != nil {
		if postPaintRect != nil {
			local = *postPaintRect
		} else {
			local = paintMatrix.MapRect(prePaintRect)
		}
	}
	p0 := d.CTM.MapXY(local.Left, local.Top)
	p1 := d.CTM.MapXY(local.Right, local.Bottom)
	devRect := geom.RectLTRB(p0.X, p0.Y, p1.X, p1.Y).Sorted()

	bbox := devRect
	switch rtype {
	case RectStroke:
		bbox = bbox.Outset(strokeSize.X/2, strokeSize.Y/2)
	case RectHair:
		bbox = bbox.Outset(1, 1)
	}
	if !fitsIn(bbox, MaxDrawCoord) {
		return
	}
	if !fitsIn(bbox, maxFixedCoord) && rtype != RectHair {
		d.drawRectAsPath(prePaintRect, p, m)
		return
	}
	if !bbox.RoundOut().Intersects(d.Clip) {
		return
	}

	b := d.Chooser.Choose(p, false)
	switch rtype {
	case RectFill:
		if p.AntiAlias {
			scan.AntiFillRect(devRect, d.Clip, b)
		} else {
			scan.FillRect(devRect, d.Clip, b)
		}
	case RectStroke:
		if p.AntiAlias {
			scan.AntiFrameRect(devRect, strokeSize, d.Clip, b)
		} else {
			scan.FrameRect(devRect, strokeSize, d.Clip, b)
		}
	case RectHair:
		if p.AntiAlias {
			scan.AntiHairRect(devRect, d.Clip, b)
		} else {
			scan.HairRect(devRect, d.Clip, b)
		}
	}
}

func (d *DrawBase) drawRectAsPath(r geom.Rect, p *pathcov.Paint, m geom.Matrix) {
	path := geom.NewPath()
	path.AddRect(r, geom.Clockwise)
	path.SetFillType(geom.FillWinding)
	draw := *d
	draw.CTM = m
	draw.DrawPath(path, p, nil, true, false, nil)
}

// fitsIn reports whether r is finite and within [-limit, limit] on both axes.
func fitsIn(r geom.Rect, limit float64) bool {
	return r.IsFinite() &&
		r.Left >= -limit && r.Top >= -limit &&
		r.Right <= limit && r.Bottom <= limit
}

// DrawPath draws path with p. prePathMatrix, when non-nil, maps path into
// local space before the CTM. pathIsMutable allows path to be transformed in
// place. With drawCoverage the chosen blitter records plain coverage. custom,
// when non-nil, receives the coverage instead of the chooser's blitter.
func (d *DrawBase) DrawPath(path *geom.Path, p *pathcov.Paint, prePathMatrix *geom.Matrix, pathIsMutable, drawCoverage bool, custom Blitter) {
	if d.Clip.IsEmpty() {
		return
	}
	m := d.CTM
	if prePathMatrix != nil {
		if p.PathEffect != nil || p.Style != pathcov.StyleFill {
			local := transformPath(path, *prePathMatrix, pathIsMutable)
			pathIsMutable = pathIsMutable || local != path
			path = local
		} else {
			m = m.Multiply(*prePathMatrix)
		}
	}

	paint := p
	if coverage, ok := TreatAsHairline(p, m); ok {
		switch {
		case coverage == 1:
			if p.StrokeWidth != 0 {
				paint = p.Clone()
				paint.StrokeWidth = 0
			}
		default:
			paint = p.Clone()
			paint.StrokeWidth = 0
			paint.SetAlpha(modulateAlpha(p.Alpha(), coverage))
		}
	}

	doFill := true
	if paint.PathEffect != nil || paint.Style != pathcov.StyleFill {
		var cull *geom.Rect
		if inv, ok := m.Invert(); ok {
			r := inv.MapRect(d.Clip.ToRect().Outset(1, 1))
			cull = &r
		}
		filled, fill := fillPathWithPaint(path, paint, cull, m)
		if filled == nil {
			return
		}
		pathIsMutable = pathIsMutable || filled != path
		path, doFill = filled, fill
	}

	devPath := transformPath(path, m, pathIsMutable)
	if fuzzHardening && devPath.CountPoints() > MaxPathPoints {
		pathcov.Logger().Debug("raster: path dropped", "points", devPath.CountPoints())
		return
	}
	d.drawDevPath(devPath, paint, drawCoverage, custom, doFill)
}

// transformPath maps path by m, reusing path when it may be modified.
func transformPath(path *geom.Path, m geom.Matrix, mutable bool) *geom.Path {
	switch {
	case m.IsIdentity():
		return path
	case mutable:
		path.TransformInPlace(m)
		return path
	}
	return path.Transform(m)
}

// fillPathWithPaint applies the paint's path effect and stroke to src and
// returns the outline to rasterize. doFill is false when the result is to be
// drawn as a hairline. A nil path means nothing is drawn.
func fillPathWithPaint(src *geom.Path, p *pathcov.Paint, cull *geom.Rect, m geom.Matrix) (dst *geom.Path, doFill bool) {
	rec := pathcov.NewStrokeRec(p, resScaleForStroking(m))
	if p.PathEffect != nil {
		effected := geom.NewPath()
		if p.PathEffect.FilterPath(effected, src, &rec, cull, m) {
			src = effected
		}
	}
	dst = src
	if stroked, ok := rec.ApplyToPath(src); ok {
		dst = stroked
	}
	if !dst.IsFinite() {
		return nil, false
	}
	return dst, !rec.IsHairline()
}

// resScaleForStroking is the largest axis scale of m, or 1 when m collapses
// or overflows.
func resScaleForStroking(m geom.Matrix) float64 {
	sx := math.Hypot(m.A, m.D)
	sy := math.Hypot(m.B, m.E)
	if geom.AllFinite(sx, sy) {
		if s := max(sx, sy); s > 0 {
			return s
		}
	}
	return 1
}

// drawDevPath rasterizes a device-space path.
func (d *DrawBase) drawDevPath(devPath *geom.Path, p *pathcov.Paint, drawCoverage bool, custom Blitter, doFill bool) {
	if !devPath.IsFinite() || tooBigForMath(devPath) {
		return
	}
	b := custom
	if b == nil {
		b = d.Chooser.Choose(p, drawCoverage)
	}
	if p.MaskFilter != nil {
		style := InitFill
		if !doFill {
			style = InitHairline
		}
		if d.filterPath(devPath, p.MaskFilter, b, style) {
			return
		}
		pathcov.Logger().Warn("raster: mask filter declined path")
	}
	pathProc(doFill, p.AntiAlias, p.Cap)(devPath, d.Clip, b)
}

// tooBigForMath reports whether the path bounds reach past MaxDrawCoord.
func tooBigForMath(p *geom.Path) bool {
	return !fitsIn(p.Bounds(), MaxDrawCoord)
}

type scanProc func(p *geom.Path, clip geom.IRect, b Blitter)

var (
	fillProcs = [2]scanProc{scan.FillPath, scan.AntiFillPath}
	hairProcs = [2][3]scanProc{
		{hairProc(false, scan.CapButt), hairProc(false, scan.CapRound), hairProc(false, scan.CapSquare)},
		{hairProc(true, scan.CapButt), hairProc(true, scan.CapRound), hairProc(true, scan.CapSquare)},
	}
)

func hairProc(aa bool, c scan.Cap) scanProc {
	if aa {
		return func(p *geom.Path, clip geom.IRect, b Blitter) { scan.AntiHairPath(p, c, clip, b) }
	}
	return func(p *geom.Path, clip geom.IRect, b Blitter) { scan.HairPath(p, c, clip, b) }
}

// pathProc selects the scan converter for a device path.
func pathProc(doFill, aa bool, c pathcov.Cap) scanProc {
	i := 0
	if aa {
		i = 1
	}
	if doFill {
		return fillProcs[i]
	}
	switch c {
	case pathcov.CapRound:
		return hairProcs[i][1]
	case pathcov.CapSquare:
		return hairProcs[i][2]
	default:
		return hairProcs[i][0]
	}
}
