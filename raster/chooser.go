package raster

import (
	"image"
	"image/color"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/internal/scan"
	"github.com/gogpu/pathcov/mask"
)

// Blitter receives the coverage produced by the scan converters.
type Blitter = scan.Blitter

// BlitterChooser builds the Blitter for one draw. With drawCoverage the
// blitter records plain coverage instead of compositing the paint's color.
type BlitterChooser interface {
	Choose(p *pathcov.Paint, drawCoverage bool) Blitter
}

// RGBAChooser composites into an RGBA image.
type RGBAChooser struct {
	Dst *image.RGBA
}

// Choose returns a blitter blending the paint's color or shader into Dst.
func (c RGBAChooser) Choose(p *pathcov.Paint, drawCoverage bool) Blitter {
	sink := scan.RGBASink{Dst: c.Dst, Color: p.Color, Shader: p.Shader}
	if drawCoverage {
		sink.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: p.Alpha()}
		sink.Shader = nil
	}
	return scan.CoverageBlitter{Sink: sink}
}

// A8Chooser accumulates coverage scaled by the paint's alpha into an A8
// mask. Color and shader are ignored.
type A8Chooser struct {
	Dst *mask.Mask
}

// Choose returns a blitter writing into Dst.
func (c A8Chooser) Choose(p *pathcov.Paint, _ bool) Blitter {
	sink := scan.MaskSink{M: c.Dst}
	if a := p.Alpha(); a != 0xff {
		return scan.CoverageBlitter{Sink: alphaSink{sink: sink, alpha: a}}
	}
	return scan.CoverageBlitter{Sink: sink}
}

// alphaSink scales every coverage value by a constant alpha.
type alphaSink struct {
	sink  scan.MaskSink
	alpha uint8
}

func (s alphaSink) scale(a uint8) uint8 {
	t := uint16(a)*uint16(s.alpha) + 128
	return uint8((t + t>>8) >> 8)
}

func (s alphaSink) BlendCoverage(x, y int, a uint8) {
	if a = s.scale(a); a != 0 {
		s.sink.BlendCoverage(x, y, a)
	}
}

func (s alphaSink) BlendSpan(x, y, width int, a uint8) {
	if a = s.scale(a); a != 0 {
		s.sink.BlendSpan(x, y, width, a)
	}
}
