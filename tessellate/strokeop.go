package tessellate

import (
	"iter"
	"math"

	"github.com/gogpu/pathcov/geom"
)

// PathStrokeList is one stroked path of a StrokeTessellateOp. Nodes come
// from the recording arena and are linked in draw order.
type PathStrokeList struct {
	Path   *geom.Path
	Stroke StrokeStyle
	Color  Color
	Next   *PathStrokeList
}

// StrokeTessellateOp draws a batch of strokes as fixed-count instances, or
// as hardware tessellation patches when the device supports it. Ops with
// the same matrix and processing merge while recording.
type StrokeTessellateOp struct {
	arena      *Arena
	head       *PathStrokeList
	tail       **PathStrokeList
	matrix     geom.Matrix
	aa         AAType
	processors ProcessorSet

	dynamicStroke bool
	dynamicColor  bool
	totalVerbs    int
	// needsStencil is set when overlapping strokes would blend twice.
	needsStencil bool
	bounds       geom.Rect
	sinEpsilon   float64
}

func newStrokeOp(a *Arena, args DrawArgs, cfg Config) *StrokeTessellateOp {
	n := a.newStrokeNode()
	*n = PathStrokeList{Path: args.Path, Stroke: *args.Stroke, Color: args.Color}
	op := a.newStrokeOp()
	*op = StrokeTessellateOp{
		arena:        a,
		head:         n,
		tail:         &n.Next,
		matrix:       args.Matrix,
		aa:           args.AAType,
		processors:   args.Processors,
		totalVerbs:   args.Path.CountVerbs(),
		needsStencil: !args.Processors.UnaffectedByDstValue(),
		bounds:       strokeDevBounds(args.Path, *args.Stroke, args.Matrix),
		sinEpsilon:   cfg.SinEpsilon,
	}
	return op
}

// strokeDevBounds returns the device bounds of path stroked with s under m.
func strokeDevBounds(path *geom.Path, s StrokeStyle, m geom.Matrix) geom.Rect {
	inflate := 1.0
	if s.Join == JoinMiter {
		inflate = max(inflate, s.MiterLimit)
	}
	if s.Cap == CapSquare {
		inflate = max(inflate, math.Sqrt2)
	}
	r := LocalStrokeWidth(s, m) / 2 * inflate * m.MaxScale()
	if s.IsHairline() {
		r = 1
	}
	return m.MapRect(path.Bounds()).Outset(r, r)
}

// Kind implements Op.
func (*StrokeTessellateOp) Kind() OpKind { return KindStrokeTessellate }

// Bounds implements Op.
func (op *StrokeTessellateOp) Bounds() geom.Rect { return op.bounds }

// Strokes returns the batched strokes in draw order.
func (op *StrokeTessellateOp) Strokes() iter.Seq[*PathStrokeList] {
	return func(yield func(*PathStrokeList) bool) {
		for n := op.head; n != nil; n = n.Next {
			if !yield(n) {
				return
			}
		}
	}
}

// TotalVerbs returns the verb count of every batched path.
func (op *StrokeTessellateOp) TotalVerbs() int { return op.totalVerbs }

// DynamicState reports whether instances carry their own stroke parameters
// and colors.
func (op *StrokeTessellateOp) DynamicState() (stroke, color bool) {
	return op.dynamicStroke, op.dynamicColor
}

// NeedsStencil reports whether the op stencils before coloring.
func (op *StrokeTessellateOp) NeedsStencil() bool { return op.needsStencil }

// UsesHardwareTessellation reports whether the batch is drawn with hardware
// tessellation on a device with caps.
func (op *StrokeTessellateOp) UsesHardwareTessellation(caps Caps) bool {
	return caps.TessellationSupport && caps.InfinitySupport &&
		!op.processors.UsesVaryingCoords &&
		op.totalVerbs > caps.MinStrokeVerbsForHWTessellation
}

// strokesEqual reports whether a and b draw with the same shader
// parameters. Caps are geometry and may differ.
func strokesEqual(a, b StrokeStyle) bool {
	if a.Width != b.Width || a.Join != b.Join {
		return false
	}
	return a.Join != JoinMiter || a.MiterLimit == b.MiterLimit
}

func (op *StrokeTessellateOp) combineIfPossible(next Op, cfg Config) bool {
	o, ok := next.(*StrokeTessellateOp)
	if !ok || op.needsStencil || o.needsStencil ||
		op.matrix != o.matrix || op.aa != o.aa || op.processors != o.processors {
		return false
	}
	if op.head.Stroke.IsHairline() != o.head.Stroke.IsHairline() {
		return false
	}

	dynStroke := op.dynamicStroke || o.dynamicStroke
	if !dynStroke && !strokesEqual(op.head.Stroke, o.head.Stroke) {
		if op.head.Stroke.IsHairline() {
			return false
		}
		dynStroke = true
	}
	dynColor := op.dynamicColor || o.dynamicColor || op.head.Color != o.head.Color
	if (dynStroke != op.dynamicStroke || dynColor != op.dynamicColor) &&
		op.totalVerbs+o.totalVerbs >= cfg.MaxVerbsToEnableDynamicState {
		return false
	}

	*op.tail = o.head
	op.tail = o.tail
	op.totalVerbs += o.totalVerbs
	op.dynamicStroke, op.dynamicColor = dynStroke, dynColor
	op.bounds = op.bounds.Union(o.bounds)
	return true
}

// Execute implements Op.
func (op *StrokeTessellateOp) Execute(fs *FlushState) {
	hw := op.UsesHardwareTessellation(fs.Caps)
	w := strokeWriter{
		sinEpsilon: op.sinEpsilon,
		infinity:   fs.Caps.InfinitySupport,
		dynStroke:  op.dynamicStroke,
		dynColor:   op.dynamicColor,
	}
	if op.arena != nil {
		w.data = op.arena.Floats((6*op.totalVerbs + 2) * w.stride())[:0]
	}
	maxScale := op.matrix.MaxScale()
	for n := range op.Strokes() {
		width := LocalStrokeWidth(n.Stroke, op.matrix)
		w.begin(n, width, NewStrokeTolerances(maxScale, width))
		w.writePath(n.Path)
	}
	if w.instances == 0 {
		return
	}

	key := PipelineKey{
		Program:       ProgramStrokeFixedCount,
		MSAA:          op.aa == AAMSAA,
		ColorWrites:   true,
		DynamicStroke: op.dynamicStroke,
		DynamicColor:  op.dynamicColor,
	}
	total := min(w.joinEdges+w.maxEdges, maxStrokeEdges)
	d := Draw{
		Op:             KindStrokeTessellate,
		Type:           DrawInstanced,
		Matrix:         op.matrix,
		Color:          op.head.Color,
		Stroke:         [2]float32{float32(LocalStrokeWidth(op.head.Stroke, op.matrix) / 2), joinCode(op.head.Stroke)},
		Edges:          [2]float32{float32(total), float32(w.joinEdges)},
		VertexCount:    2 * total,
		InstanceOffset: fs.appendInstances(w.data),
		InstanceCount:  w.instances,
	}
	if hw {
		key.Program = ProgramStrokeHardware
		// One patch vertex per instance.
		d.VertexCount = 1
	}
	if !op.needsStencil {
		d.Pipeline = fs.Pipeline(key)
		fs.record(d)
		return
	}

	key.Stencil, key.ColorWrites = StencilMark, false
	d.Pipeline = fs.Pipeline(key)
	d.StencilRef = 1
	fs.record(d)

	off, n := fs.appendVertices(rectTriangles(op.bounds))
	fs.record(Draw{
		Op:           KindStrokeTessellate,
		Pipeline:     fs.Pipeline(PipelineKey{Program: ProgramTriangles, Stencil: StencilCover, MSAA: key.MSAA, ColorWrites: true}),
		Type:         DrawTriangles,
		Matrix:       geom.Identity(),
		Color:        op.head.Color,
		VertexOffset: off,
		VertexCount:  n,
	})
}
