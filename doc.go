// Package pathcov turns vector geometry into pixel coverage.
//
// The root package holds the paint model shared by the CPU and GPU
// pipelines: Paint, StrokeRec, the PathEffect and MaskFilter capabilities,
// the Dash path effect, and logging configuration.
//
// Sub-packages:
//
//   - geom: points, rects, matrices, paths and rounded rects
//   - mask: coverage masks and their builder
//   - maskcache: cache of blurred masks keyed by shape
//   - raster: CPU rasterizer (rect classification, fast paths, mask drawing)
//   - maskfilter: Gaussian blur mask filter
//   - tessellate: GPU tessellation op selection and recording
//   - vertexfill: glyph quad vertex filling
//
// Nothing is logged by default. Call SetLogger to enable diagnostics.
package pathcov
