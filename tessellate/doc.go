// Package tessellate turns paths into GPU draw data.
//
// PathRenderer classifies each draw and records one op into a Recording:
//
//	stroke                      StrokeTessellateOp
//	convex fill                 PathTessellateOp (no stencil)
//	simple fill, large bounds   PathInnerTriangulateOp (CPU triangulation)
//	otherwise                   PathStencilCoverOp
//
// Curves are written as cubic-form patches and drawn as instances of a
// middle-out triangulated patch with a fixed vertex count per resolve level.
// Polygon interiors use the middle-out fan from the same module. Ops are
// allocated from the recording's Arena and the arena is reset on Flush.
//
// A Recording and its ops are not safe for concurrent use. Use one
// recording per goroutine.
package tessellate
