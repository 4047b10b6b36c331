// Package maskfilter provides a Gaussian blur mask filter.
//
// Blur implements the general MaskFilter contract on any coverage mask and
// the direct rounded-rect and nested-rects routes used by the rasterizer.
// The direct routes rasterize the shape with golang.org/x/image/vector,
// blur it, and optionally memoize the result in a maskcache.Cache: rrects by
// exact device geometry, rects independently of whole-pixel translation.
package maskfilter
