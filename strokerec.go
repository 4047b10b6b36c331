package pathcov

import (
	"math"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/stroker"
)

// StrokeRecStyle classifies a StrokeRec.
type StrokeRecStyle uint8

const (
	StrokeRecHairline StrokeRecStyle = iota
	StrokeRecFill
	StrokeRecStroke
	StrokeRecStrokeAndFill
)

// StrokeRec is the stroke portion of a paint, resolved for one draw. Path
// effects may rewrite it, for example turning a stroke into a fill after
// producing outline geometry.
type StrokeRec struct {
	Width      float64
	MiterLimit float64
	Cap        Cap
	Join       Join
	// ResScale is the number of device pixels per local unit. It controls
	// curve subdivision when the outline is materialized.
	ResScale float64

	style StrokeRecStyle
}

// NewStrokeRec resolves p's stroke settings.
func NewStrokeRec(p *Paint, resScale float64) StrokeRec {
	r := StrokeRec{
		Width:      p.StrokeWidth,
		MiterLimit: p.MiterLimit,
		Cap:        p.Cap,
		Join:       p.Join,
		ResScale:   resScale,
	}
	switch {
	case p.Style == StyleFill:
		r.SetFill()
	case p.StrokeWidth == 0:
		if p.Style == StyleStrokeAndFill {
			r.SetFill()
		} else {
			r.SetHairline()
		}
	case p.Style == StyleStrokeAndFill:
		r.style = StrokeRecStrokeAndFill
	default:
		r.style = StrokeRecStroke
	}
	return r
}

// Style returns the record's classification.
func (r *StrokeRec) Style() StrokeRecStyle { return r.style }

// IsFill reports whether the record fills without stroking.
func (r *StrokeRec) IsFill() bool { return r.style == StrokeRecFill }

// IsHairline reports whether the record is a zero-width stroke.
func (r *StrokeRec) IsHairline() bool { return r.style == StrokeRecHairline }

// SetFill turns the record into a plain fill.
func (r *StrokeRec) SetFill() {
	r.style = StrokeRecFill
	r.Width = 0
}

// SetHairline turns the record into a hairline.
func (r *StrokeRec) SetHairline() {
	r.style = StrokeRecHairline
	r.Width = 0
}

// SetStroke sets a positive stroke width. Zero width becomes a hairline, or a
// fill when strokeAndFill is set.
func (r *StrokeRec) SetStroke(width float64, strokeAndFill bool) {
	r.Width = width
	switch {
	case width == 0 && strokeAndFill:
		r.SetFill()
	case width == 0:
		r.SetHairline()
	case strokeAndFill:
		r.style = StrokeRecStrokeAndFill
	default:
		r.style = StrokeRecStroke
	}
}

// NeedToApply reports whether ApplyToPath would produce an outline.
func (r *StrokeRec) NeedToApply() bool {
	return r.style == StrokeRecStroke || r.style == StrokeRecStrokeAndFill
}

// InflationRadius returns how far the stroke can extend past the geometry.
func (r *StrokeRec) InflationRadius() float64 {
	switch r.style {
	case StrokeRecFill:
		return 0
	case StrokeRecHairline:
		return 1
	}
	radius := r.Width / 2
	if r.Join == JoinMiter && r.MiterLimit > 1 {
		radius *= r.MiterLimit
	}
	if r.Cap == CapSquare {
		radius = math.Max(radius, r.Width/2*math.Sqrt2)
	}
	return radius
}

// ApplyToPath returns the fill outline of src under the record. It reports
// false, returning nil, for fills and hairlines.
func (r *StrokeRec) ApplyToPath(src *geom.Path) (*geom.Path, bool) {
	if !r.NeedToApply() {
		return nil, false
	}
	out := stroker.Stroke(src, stroker.Style{
		Width:      r.Width,
		MiterLimit: r.MiterLimit,
		Cap:        stroker.Cap(r.Cap),
		Join:       stroker.Join(r.Join),
	}, r.ResScale)
	if r.style == StrokeRecStrokeAndFill {
		out.AddPath(src)
	}
	out.SetFillType(geom.FillWinding)
	return out, true
}
