package tessellate

import (
	"math"

	"github.com/gogpu/pathcov/geom"
)

// DrawArgs describes one path draw.
type DrawArgs struct {
	Path   *geom.Path
	Matrix geom.Matrix
	// Stroke is nil for fills.
	Stroke     *StrokeStyle
	Color      Color
	Processors ProcessorSet
	AAType     AAType
	// UserStencil is set when the caller draws with its own stencil
	// settings.
	UserStencil bool
	// SurfaceBounds is the device-space render target area.
	SurfaceBounds geom.Rect
}

// PathRenderer picks the op that draws a path.
type PathRenderer struct {
	Caps   Caps
	Config Config
}

// NewPathRenderer returns a renderer for a device with caps.
func NewPathRenderer(caps Caps, cfg Config) *PathRenderer {
	return &PathRenderer{Caps: caps, Config: cfg}
}

// CanDraw reports whether the renderer supports args. Perspective and
// coverage AA are never supported. Strokes of inverse paths are rejected.
// With a user stencil only convex, non-inverse fills are supported, since
// every other op uses the stencil itself.
func (r *PathRenderer) CanDraw(args DrawArgs) bool {
	if args.Matrix.HasPerspective() || args.AAType == AACoverage {
		return false
	}
	inverse := args.Path.IsInverseFillType()
	if args.Stroke != nil && inverse {
		return false
	}
	if args.UserStencil && (args.Stroke != nil || inverse || !args.Path.IsConvex()) {
		return false
	}
	return true
}

// ChooseFillOp returns the op kind for a non-convex fill with the given verb
// count and device bounds area. Triangulating on the CPU costs about
// verbs*log2(verbs), with log2 rounded up to the next integer; it wins when that cost, weighted into pixels, is below
// the pixels the stencil pass would touch.
func (c Config) ChooseFillOp(verbs int, area float64) OpKind {
	if verbs > 0 {
		cpuWork := float64(verbs) * math.Ceil(math.Log2(float64(verbs)))
		if cpuWork*c.CPUWeight+c.MinNumPixelsToTriangulate < area {
			return KindPathInnerTriangulate
		}
	}
	return KindPathStencilCover
}

// DrawPath records the op that draws args into rec and returns it. It
// returns nil when nothing needs drawing. The returned op may have been
// merged into the previous op.
func (r *PathRenderer) DrawPath(rec *Recording, args DrawArgs) Op {
	if !args.Path.IsFinite() || !args.Matrix.IsFinite() {
		Logger().Debug("tessellate: dropped non-finite path")
		return nil
	}
	if args.Stroke != nil {
		op := newStrokeOp(rec.arena, args, r.Config)
		rec.AddOp(op)
		return op
	}
	return r.fill(rec, args, false)
}

// StencilPath records ops that write the fill of args into the stencil
// without coloring. Strokes cannot be stenciled and return nil.
func (r *PathRenderer) StencilPath(rec *Recording, args DrawArgs) Op {
	if args.Stroke != nil {
		Logger().Debug("tessellate: cannot stencil a stroke")
		return nil
	}
	if !args.Path.IsFinite() || !args.Matrix.IsFinite() {
		return nil
	}
	return r.fill(rec, args, true)
}

func (r *PathRenderer) fill(rec *Recording, args DrawArgs, stencilOnly bool) Op {
	path := args.Path
	inverse := path.IsInverseFillType()
	devBounds := args.Matrix.MapRect(path.Bounds())
	if devBounds.IsEmpty() {
		if !inverse {
			return nil
		}
		op := rec.arena.newFillRectOp()
		*op = FillRectOp{rect: args.SurfaceBounds, color: args.Color, aa: args.AAType, stencilOnly: stencilOnly}
		rec.AddOp(op)
		return op
	}

	po := pathOp{
		path:        path,
		matrix:      args.Matrix,
		color:       args.Color,
		processors:  args.Processors,
		aa:          args.AAType,
		stencilOnly: stencilOnly,
		bounds:      devBounds,
	}
	if inverse {
		po.bounds = args.SurfaceBounds
	}

	var op Op
	switch {
	case !inverse && path.IsConvex():
		t := rec.arena.newTessellateOp()
		t.pathOp = po
		op = t
	case r.Config.ChooseFillOp(path.CountVerbs(), devBounds.Area()) == KindPathInnerTriangulate:
		t := rec.arena.newInnerTriangulateOp()
		t.pathOp = po
		op = t
	default:
		t := rec.arena.newStencilCoverOp()
		t.pathOp = po
		op = t
	}
	Logger().Debug("tessellate: fill op", "op", op.Kind(), "verbs", path.CountVerbs(), "stencilOnly", stencilOnly)
	rec.AddOp(op)
	return op
}
