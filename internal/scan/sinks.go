package scan

import (
	"image"
	"image/color"

	"github.com/gogpu/pathcov/mask"
)

// MaskSink accumulates coverage into an A8 mask with source-over.
// Pixels outside the mask bounds are ignored.
type MaskSink struct {
	M *mask.Mask
}

var _ SpanSink = MaskSink{}

// BlendCoverage composites alpha over the stored coverage.
func (s MaskSink) BlendCoverage(x, y int, alpha uint8) {
	if !s.M.Bounds.ContainsXY(x, y) {
		return
	}
	p := s.M.Addr8(x, y)
	*p = srcOver(alpha, *p)
}

// BlendSpan composites alpha over width pixels of row y.
func (s MaskSink) BlendSpan(x, y, width int, alpha uint8) {
	row := s.M.Row(y)
	if row == nil {
		return
	}
	l := max(x, s.M.Bounds.Left)
	r := min(x+width, s.M.Bounds.Right)
	for i := l - s.M.Bounds.Left; i < r-s.M.Bounds.Left; i++ {
		row[i] = srcOver(alpha, row[i])
	}
}

// Shader supplies the source color of a pixel center.
type Shader interface {
	ColorAt(x, y float64) color.NRGBA
}

// RGBASink blends a color or shader into an RGBA image, scaled by coverage.
// With a shader, the alpha of Color modulates the shaded color.
type RGBASink struct {
	Dst    *image.RGBA
	Color  color.NRGBA
	Shader Shader
}

var _ PixelSink = RGBASink{}

// BlendCoverage composites the source at (x, y) with the given coverage.
func (s RGBASink) BlendCoverage(x, y int, alpha uint8) {
	if !(image.Point{X: x, Y: y}.In(s.Dst.Rect)) {
		return
	}
	c := s.Color
	if s.Shader != nil {
		sc := s.Shader.ColorAt(float64(x)+0.5, float64(y)+0.5)
		sc.A = mulDiv255(sc.A, c.A)
		c = sc
	}
	a := mulDiv255(c.A, alpha)
	if a == 0 {
		return
	}
	i := s.Dst.PixOffset(x, y)
	d := s.Dst.Pix[i : i+4 : i+4]
	inv := 255 - a
	d[0] = mulDiv255(c.R, a) + mulDiv255(d[0], inv)
	d[1] = mulDiv255(c.G, a) + mulDiv255(d[1], inv)
	d[2] = mulDiv255(c.B, a) + mulDiv255(d[2], inv)
	d[3] = a + mulDiv255(d[3], inv)
}

// srcOver is a + d*(1-a) in 0-255 fixed point.
func srcOver(a, d uint8) uint8 {
	return a + mulDiv255(d, 255-a)
}

// mulDiv255 returns a*b/255 rounded.
func mulDiv255(a, b uint8) uint8 {
	t := uint16(a)*uint16(b) + 128
	return uint8((t + t>>8) >> 8)
}
