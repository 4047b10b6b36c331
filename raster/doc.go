// Package raster draws paths, rects and rounded rects into coverage on the
// CPU.
//
// DrawBase holds the device clip, the current transform and a BlitterChooser
// that turns a paint into the Blitter receiving coverage. Draw calls pick the
// cheapest correct route: axis-aligned rects go straight to the rect scan
// converters, thin strokes become alpha-modulated hairlines, and everything
// else is stroked or dashed into a device-space path and filled. Paints with
// a mask filter are first rendered into an A8 mask with DrawToMask, filtered,
// and blitted.
//
// Degenerate input never fails a draw: non-finite geometry and coordinates
// too large to rasterize are dropped silently.
package raster
