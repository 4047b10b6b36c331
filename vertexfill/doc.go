// Package vertexfill writes the vertex quads of glyph runs drawn from a
// glyph atlas.
//
// A [Strike] holds the glyphs rasterized at one size and transform. Layout
// workers digest glyph IDs into a strike concurrently; the strike lock is
// the only synchronization. A [VertexFiller] remembers where each glyph of a
// run landed when the run was created and writes one quad per glyph for
// every later draw:
//
//   - direct: the draw matrix equals the creation matrix up to an integer
//     translation, so device rects are the atlas rects shifted by whole
//     pixels
//   - direct clipped: as direct, with each quad cut to the clip and its
//     atlas coordinates cut by the same amount
//   - affine: each glyph corner is mapped through the draw matrix
//   - perspective: corners are mapped to homogeneous 3D positions
package vertexfill
