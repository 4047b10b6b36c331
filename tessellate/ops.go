package tessellate

import "github.com/gogpu/pathcov/geom"

// pathOp is the state shared by the fill ops.
type pathOp struct {
	path        *geom.Path
	matrix      geom.Matrix
	color       Color
	processors  ProcessorSet
	aa          AAType
	stencilOnly bool
	// bounds is the device-space area drawn: the path bounds, or the
	// surface for inverse fills.
	bounds geom.Rect
}

func (o *pathOp) Bounds() geom.Rect { return o.bounds }

func (o *pathOp) key(p ProgramID, s StencilSettings) PipelineKey {
	return PipelineKey{Program: p, Stencil: s, MSAA: o.aa == AAMSAA, ColorWrites: !o.stencilOnly}
}

// fillStencil returns the stencil pass settings for the path's fill rule.
func (o *pathOp) fillStencil() StencilSettings {
	if o.path.FillType().IsEvenOdd() {
		return StencilWindingEvenOdd
	}
	return StencilWindingNonZero
}

func (o *pathOp) drawTriangles(fs *FlushState, kind OpKind, s StencilSettings, m geom.Matrix, xy []float32) {
	if len(xy) < 6 {
		return
	}
	off, n := fs.appendVertices(xy)
	fs.record(Draw{
		Op:           kind,
		Pipeline:     fs.Pipeline(o.key(ProgramTriangles, s)),
		Type:         DrawTriangles,
		Matrix:       m,
		Color:        o.color,
		VertexOffset: off,
		VertexCount:  n,
	})
}

// drawPatches draws every curve patch of g, triangulated to its resolve
// level.
func (o *pathOp) drawPatches(fs *FlushState, kind OpKind, s StencilSettings, g *pathGeometry) {
	count := CurveIndexCount(g.resolveLevel)
	if g.numPatches == 0 || count == 0 {
		return
	}
	fs.curveIndices()
	off := fs.appendInstances(g.patches)
	fs.record(Draw{
		Op:             kind,
		Pipeline:       fs.Pipeline(o.key(ProgramCurvePatches, s)),
		Type:           DrawIndexedInstanced,
		Matrix:         o.matrix,
		Color:          o.color,
		VertexCount:    count,
		InstanceOffset: off,
		InstanceCount:  g.numPatches,
	})
}

// coverRect draws r in device space through the cover stencil test.
func (o *pathOp) coverRect(fs *FlushState, kind OpKind, r geom.Rect) {
	s := StencilCover
	if o.path.IsInverseFillType() {
		s = StencilCoverInverse
	}
	o.drawTriangles(fs, kind, s, geom.Identity(), rectTriangles(r))
}

// rectTriangles returns r as two triangles.
func rectTriangles(r geom.Rect) []float32 {
	l, t, rt, b := float32(r.Left), float32(r.Top), float32(r.Right), float32(r.Bottom)
	return []float32{l, t, rt, t, rt, b, l, t, rt, b, l, b}
}

// PathTessellateOp draws a convex fill directly: the middle-out fan of the
// polygon plus the curve patches, with no stencil. In stencil-only mode it
// writes the fill stencil instead.
type PathTessellateOp struct {
	pathOp
}

// Kind implements Op.
func (*PathTessellateOp) Kind() OpKind { return KindPathTessellate }

// Execute implements Op.
func (op *PathTessellateOp) Execute(fs *FlushState) {
	g := splitPath(op.path, op.matrix, fs.Caps)
	s := StencilNone
	if op.stencilOnly {
		s = op.fillStencil()
	}
	op.drawTriangles(fs, KindPathTessellate, s, op.matrix, g.fanTriangles())
	op.drawPatches(fs, KindPathTessellate, s, g)
}

// PathStencilCoverOp stencils the fan and curve patches with the fill rule,
// then covers the path bounds where the stencil is set. Inverse fills
// cover the surface where it is clear.
type PathStencilCoverOp struct {
	pathOp
}

// Kind implements Op.
func (*PathStencilCoverOp) Kind() OpKind { return KindPathStencilCover }

// Execute implements Op.
func (op *PathStencilCoverOp) Execute(fs *FlushState) {
	g := splitPath(op.path, op.matrix, fs.Caps)
	s := op.fillStencil()
	op.drawTriangles(fs, KindPathStencilCover, s, op.matrix, g.fanTriangles())
	op.drawPatches(fs, KindPathStencilCover, s, g)
	if op.stencilOnly {
		return
	}
	op.coverRect(fs, KindPathStencilCover, op.bounds)
}

// PathInnerTriangulateOp triangulates the polygon through the on-curve
// points on the CPU. Only the curve patches are stenciled with the fill
// rule. The inner triangles then color pixels whose stencil is still zero
// and add their winding to the rest, and the curve hulls cover whatever is
// left nonzero. Paths with several contours or a contour that does not
// triangulate, inverse fills and stencil-only draws stencil the whole path
// instead.
type PathInnerTriangulateOp struct {
	pathOp
}

// Kind implements Op.
func (*PathInnerTriangulateOp) Kind() OpKind { return KindPathInnerTriangulate }

// Execute implements Op.
func (op *PathInnerTriangulateOp) Execute(fs *FlushState) {
	g := splitPath(op.path, op.matrix, fs.Caps)
	inner, ok := innerTriangles(g)
	if !ok {
		Logger().Warn("tessellate: inner triangulation fell back to fan", "verbs", g.verbs)
	}
	s := op.fillStencil()
	if ok && g.moves == 1 && !op.stencilOnly && !op.path.IsInverseFillType() {
		op.drawPatches(fs, KindPathInnerTriangulate, s, g)
		op.drawTriangles(fs, KindPathInnerTriangulate, op.innerFillStencil(g), op.matrix, inner)
		op.coverHulls(fs, g)
		return
	}

	op.drawTriangles(fs, KindPathInnerTriangulate, s, op.matrix, inner)
	op.drawPatches(fs, KindPathInnerTriangulate, s, g)
	if op.stencilOnly {
		return
	}
	if op.path.IsInverseFillType() {
		op.coverRect(fs, KindPathInnerTriangulate, op.bounds)
		return
	}
	op.drawTriangles(fs, KindPathInnerTriangulate, StencilCover, op.matrix, inner)
	op.coverHulls(fs, g)
}

// innerFillStencil returns the settings for drawing the inner triangles of
// g after its curves were stenciled. Without curves the stencil is clear
// and the triangles draw directly.
func (op *PathInnerTriangulateOp) innerFillStencil(g *pathGeometry) StencilSettings {
	switch {
	case g.numPatches == 0:
		return StencilNone
	case op.path.FillType().IsEvenOdd():
		return StencilFillOrInvert
	default:
		return StencilFillOrIncrDecr
	}
}

// coverHulls draws the control hull of every curve patch through the cover
// stencil test.
func (op *PathInnerTriangulateOp) coverHulls(fs *FlushState, g *pathGeometry) {
	if g.numPatches == 0 {
		return
	}
	off := fs.appendInstances(g.patches)
	fs.record(Draw{
		Op:             KindPathInnerTriangulate,
		Pipeline:       fs.Pipeline(op.key(ProgramCurveHulls, StencilCover)),
		Type:           DrawInstanced,
		Matrix:         op.matrix,
		Color:          op.color,
		VertexCount:    6,
		InstanceOffset: off,
		InstanceCount:  g.numPatches,
	})
}

// FillRectOp paints a device-space rect. It stands in for inverse fills of
// empty paths, which cover the whole surface. In stencil-only mode it marks
// the stencil with 1.
type FillRectOp struct {
	rect        geom.Rect
	color       Color
	aa          AAType
	stencilOnly bool
}

// Kind implements Op.
func (*FillRectOp) Kind() OpKind { return KindFillRect }

// Bounds implements Op.
func (op *FillRectOp) Bounds() geom.Rect { return op.rect }

// Execute implements Op.
func (op *FillRectOp) Execute(fs *FlushState) {
	key := PipelineKey{Program: ProgramTriangles, MSAA: op.aa == AAMSAA, ColorWrites: !op.stencilOnly}
	var ref uint32
	if op.stencilOnly {
		key.Stencil = StencilMark
		ref = 1
	}
	off, n := fs.appendVertices(rectTriangles(op.rect))
	fs.record(Draw{
		Op:           KindFillRect,
		Pipeline:     fs.Pipeline(key),
		Type:         DrawTriangles,
		Matrix:       geom.Identity(),
		Color:        op.color,
		VertexOffset: off,
		VertexCount:  n,
		StencilRef:   ref,
	})
}
