package raster

import (
	"math"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/scan"
)

// PointMode selects how DrawDevicePoints interprets its points.
type PointMode uint8

const (
	// PointsMode draws each point as a dot the size of the stroke width.
	PointsMode PointMode = iota
	// LinesMode strokes each pair of points as a separate segment.
	LinesMode
	// PolygonMode strokes the points as one connected polyline.
	PolygonMode
)

// String returns the mode name.
func (m PointMode) String() string {
	switch m {
	case PointsMode:
		return "Points"
	case LinesMode:
		return "Lines"
	case PolygonMode:
		return "Polygon"
	default:
		return "PointMode(?)"
	}
}

// DrawDevicePoints draws pts in local space according to mode. Round dots
// go to device when it is non-nil.
func (d *DrawBase) DrawDevicePoints(mode PointMode, pts []geom.Point, p *pathcov.Paint, device Device) {
	if mode == LinesMode {
		pts = pts[:len(pts)&^1]
	}
	if len(pts) == 0 || d.Clip.IsEmpty() {
		return
	}

	switch mode {
	case PointsMode:
		d.drawDots(pts, p, device)
		return
	case LinesMode:
		if len(pts) == 2 && d.drawDashedLine(pts, p, device) {
			return
		}
	}

	stroke := p.Clone()
	stroke.Style = pathcov.StyleStroke
	inc := 1
	if mode == LinesMode {
		inc = 2
	}
	for i := 0; i+1 < len(pts); i += inc {
		path := geom.NewPath()
		path.MoveTo(pts[i].X, pts[i].Y)
		path.LineTo(pts[i+1].X, pts[i+1].Y)
		d.DrawPath(path, stroke, nil, true, false, nil)
	}
}

// drawDots fills a square or circle of the stroke width around each point.
func (d *DrawBase) drawDots(pts []geom.Point, p *pathcov.Paint, device Device) {
	fill := p.Clone()
	fill.Style = pathcov.StyleFill
	width := fill.StrokeWidth
	if width == 0 {
		d.drawHairDots(pts, p)
		return
	}
	radius := width / 2

	if fill.Cap != pathcov.CapRound {
		for _, pt := range pts {
			r := geom.RectXYWH(pt.X-radius, pt.Y-radius, width, width)
			d.DrawRect(r, fill, nil, nil)
		}
		return
	}
	if device != nil {
		for _, pt := range pts {
			device.DrawOval(geom.RectLTRB(pt.X-radius, pt.Y-radius, pt.X+radius, pt.Y+radius), fill)
		}
		return
	}
	circle := geom.NewPath()
	circle.AddCircle(0, 0, radius, geom.Clockwise)
	var pre geom.Matrix
	for _, pt := range pts {
		pre = geom.Translate(pt.X, pt.Y)
		d.DrawPath(circle, fill, &pre, false, false, nil)
	}
}

// drawHairDots covers one device pixel per point, the pixel containing the
// point without anti-aliasing or a unit square centered on it with.
func (d *DrawBase) drawHairDots(pts []geom.Point, p *pathcov.Paint) {
	b := d.Chooser.Choose(p, false)
	for _, pt := range pts {
		dev := d.CTM.MapPoint(pt)
		if !dev.IsFinite() {
			continue
		}
		if p.AntiAlias {
			scan.AntiFillRect(geom.RectXYWH(dev.X-0.5, dev.Y-0.5, 1, 1), d.Clip, b)
		} else {
			scan.FillRect(geom.RectXYWH(math.Floor(dev.X), math.Floor(dev.Y), 1, 1), d.Clip, b)
		}
	}
}

// drawDashedLine draws a two point line whose path effect can describe its
// dashes as dots. It reports false when the effect declines.
func (d *DrawBase) drawDashedLine(pts []geom.Point, p *pathcov.Paint, device Device) bool {
	pe, ok := p.PathEffect.(pathcov.PointsPathEffect)
	if !ok {
		return false
	}
	line := geom.NewPath()
	line.MoveTo(pts[0].X, pts[0].Y)
	line.LineTo(pts[1].X, pts[1].Y)
	rec := pathcov.NewStrokeRec(p, 1)
	cull := d.Clip.ToRect()
	var pd pathcov.PointData
	if !pe.AsPoints(&pd, line, &rec, d.CTM, &cull) {
		return false
	}
	pathcov.Logger().Debug("raster: dashed line as points", "dots", len(pd.Points))

	plain := p.Clone()
	plain.PathEffect = nil
	for _, partial := range []*geom.Path{pd.First, pd.Last} {
		if partial != nil {
			d.DrawPath(partial, plain, nil, true, false, nil)
		}
	}

	if pd.Flags&pathcov.PointCircles != 0 {
		dots := plain.Clone()
		dots.Cap = pathcov.CapRound
		d.drawDots(pd.Points, dots, device)
		return true
	}
	fill := plain.Clone()
	fill.Style = pathcov.StyleFill
	for _, pt := range pd.Points {
		r := geom.RectLTRB(pt.X-pd.Size.X, pt.Y-pd.Size.Y, pt.X+pd.Size.X, pt.Y+pd.Size.Y)
		d.DrawRect(r, fill, nil, nil)
	}
	return true
}
