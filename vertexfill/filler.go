package vertexfill

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/pathcov/geom"
)

// MaskFormat is the pixel format of the atlas a strike is drawn into.
type MaskFormat uint8

const (
	FormatA8 MaskFormat = iota
	FormatLCD
	FormatARGB
)

// MaskType is how a text op interprets atlas texels.
type MaskType uint8

const (
	MaskGrayscaleCoverage MaskType = iota
	MaskLCDCoverage
	MaskColorBitmap
)

// String returns the mask type name.
func (t MaskType) String() string {
	switch t {
	case MaskGrayscaleCoverage:
		return "GrayscaleCoverage"
	case MaskLCDCoverage:
		return "LCDCoverage"
	case MaskColorBitmap:
		return "ColorBitmap"
	default:
		return "MaskType(?)"
	}
}

// Vertex sizes in bytes. Color bitmaps carry no vertex color.
const (
	pos2DSize = 8
	pos3DSize = 12
	colorSize = 4
	uvSize    = 4
)

// VerticesPerGlyph is the vertex count of one glyph quad, ordered left-top,
// left-bottom, right-top, right-bottom.
const VerticesPerGlyph = 4

// VertexFiller writes the quads of one glyph run. The run was laid out under
// the creation matrix; leftTop holds the device position of each glyph image
// under that matrix.
type VertexFiller struct {
	maskType       MaskType
	canDrawDirect  bool
	creationMatrix geom.Matrix
	creationBounds geom.Rect
	leftTop        []geom.Point
}

// NewVertexFiller returns a filler for glyph images at leftTop, laid out
// under creation. canDrawDirect is set when the images were rasterized at
// device resolution for creation, so integer translations of it may reuse
// the atlas texels one to one.
func NewVertexFiller(format MaskFormat, creation geom.Matrix, canDrawDirect bool, creationBounds geom.Rect, leftTop []geom.Point) *VertexFiller {
	return &VertexFiller{
		maskType:       maskTypeFor(format),
		canDrawDirect:  canDrawDirect,
		creationMatrix: creation,
		creationBounds: creationBounds,
		leftTop:        leftTop,
	}
}

// Make builds a filler for glyphs drawn with their origins at origins, in
// creation device space.
func Make(format MaskFormat, creation geom.Matrix, canDrawDirect bool, glyphs []*Glyph, origins []geom.Point) *VertexFiller {
	leftTop := make([]geom.Point, len(glyphs))
	var bounds geom.Rect
	for i, g := range glyphs {
		lt := origins[i].Add(geom.Pt(float64(g.Bounds.Left), float64(g.Bounds.Top)))
		leftTop[i] = lt
		r := geom.RectXYWH(lt.X, lt.Y, float64(g.Bounds.Width()), float64(g.Bounds.Height()))
		if i == 0 {
			bounds = r
		} else {
			bounds = bounds.Union(r)
		}
	}
	return NewVertexFiller(format, creation, canDrawDirect, bounds, leftTop)
}

func maskTypeFor(f MaskFormat) MaskType {
	switch f {
	case FormatLCD:
		return MaskLCDCoverage
	case FormatARGB:
		return MaskColorBitmap
	default:
		return MaskGrayscaleCoverage
	}
}

// OpMaskType returns the mask type of the op drawing this run.
func (v *VertexFiller) OpMaskType() MaskType { return v.maskType }

// IsLCD reports whether the run is LCD coverage.
func (v *VertexFiller) IsLCD() bool { return v.maskType == MaskLCDCoverage }

// Count returns the number of glyphs in the run.
func (v *VertexFiller) Count() int { return len(v.leftTop) }

func (v *VertexFiller) hasColor() bool { return v.maskType != MaskColorBitmap }

// canUseDirect reports whether creation and position differ only by an
// integer translation, and returns that translation.
func canUseDirect(creation, position geom.Matrix) (bool, geom.Point) {
	translation := position.MapXY(0, 0).Sub(creation.MapXY(0, 0))
	ok := creation.Upper2x2Equal(position) &&
		!creation.HasPerspective() && !position.HasPerspective() &&
		isInt(translation.X) && isInt(translation.Y)
	return ok, translation
}

func isInt(v float64) bool { return v == math.Trunc(v) }

// CanUseDirect reports whether the run can be drawn under positionMatrix by
// shifting the atlas rects by whole pixels.
func (v *VertexFiller) CanUseDirect(positionMatrix geom.Matrix) bool {
	ok, _ := canUseDirect(v.creationMatrix, positionMatrix)
	return v.canDrawDirect && ok
}

// viewDifference maps creation device space to draw device space.
func (v *VertexFiller) viewDifference(positionMatrix geom.Matrix) geom.Matrix {
	inv, ok := v.creationMatrix.Invert()
	if !ok {
		return positionMatrix
	}
	return positionMatrix.Multiply(inv)
}

// DeviceRect returns the device bounds of the run under positionMatrix.
func (v *VertexFiller) DeviceRect(positionMatrix geom.Matrix) geom.Rect {
	return v.viewDifference(positionMatrix).MapRect(v.creationBounds)
}

// is3D reports whether quads under positionMatrix carry homogeneous
// positions.
func (v *VertexFiller) is3D(positionMatrix geom.Matrix) bool {
	if v.CanUseDirect(positionMatrix) {
		return false
	}
	return v.viewDifference(positionMatrix).HasPerspective()
}

// VertexStride returns the vertex size in bytes under positionMatrix.
func (v *VertexFiller) VertexStride(positionMatrix geom.Matrix) int {
	n := pos2DSize + uvSize
	if v.is3D(positionMatrix) {
		n = pos3DSize + uvSize
	}
	if v.hasColor() {
		n += colorSize
	}
	return n
}

// FillVertexData appends the quads of glyphs[offset:offset+count] to dst.
// glyphs must be the run's glyphs in layout order. color is RGBA8. An empty
// clip disables clipping; clipping applies to direct quads only, other quads
// rely on the scissor.
func (v *VertexFiller) FillVertexData(dst []byte, offset, count int, glyphs []*Glyph, color [4]uint8, positionMatrix geom.Matrix, clip geom.IRect) []byte {
	w := quadWriter{dst: dst, color: color, hasColor: v.hasColor()}
	glyphs = glyphs[offset : offset+count]
	leftTop := v.leftTop[offset : offset+count]

	if ok, t := canUseDirect(v.creationMatrix, positionMatrix); v.canDrawDirect && ok {
		dx, dy := int(t.X), int(t.Y)
		if clip.IsEmpty() {
			for i, g := range glyphs {
				w.direct(g.Atlas(), leftTop[i], dx, dy)
			}
		} else {
			for i, g := range glyphs {
				w.directClipped(g.Atlas(), leftTop[i], dx, dy, clip)
			}
		}
		return w.dst
	}

	m := v.viewDifference(positionMatrix)
	if v.is3D(positionMatrix) {
		mat := mgl32.Mat3{
			float32(m.A), float32(m.D), float32(m.G),
			float32(m.B), float32(m.E), float32(m.H),
			float32(m.C), float32(m.F), float32(m.I),
		}
		for i, g := range glyphs {
			w.perspective(g.Atlas(), leftTop[i], mat)
		}
		return w.dst
	}
	aff := f32.Aff3{
		float32(m.A), float32(m.B), float32(m.C),
		float32(m.D), float32(m.E), float32(m.F),
	}
	for i, g := range glyphs {
		w.affine(g.Atlas(), leftTop[i], aff)
	}
	return w.dst
}

// quadWriter appends glyph vertices.
type quadWriter struct {
	dst      []byte
	color    [4]uint8
	hasColor bool
}

// atlasUV packs an atlas texel coordinate with one bit of the page index.
func atlasUV(c int, pageBit uint16) uint16 {
	return uint16(c)<<1 | pageBit&1
}

func (w *quadWriter) vertexTail(u, v int, page uint16) {
	if w.hasColor {
		w.dst = append(w.dst, w.color[:]...)
	}
	w.dst = binary.LittleEndian.AppendUint16(w.dst, atlasUV(u, page))
	w.dst = binary.LittleEndian.AppendUint16(w.dst, atlasUV(v, page>>1))
}

func (w *quadWriter) vertex2D(x, y float32, u, v int, page uint16) {
	w.dst = binary.LittleEndian.AppendUint32(w.dst, math.Float32bits(x))
	w.dst = binary.LittleEndian.AppendUint32(w.dst, math.Float32bits(y))
	w.vertexTail(u, v, page)
}

func (w *quadWriter) vertex3D(p mgl32.Vec3, u, v int, page uint16) {
	for _, c := range p {
		w.dst = binary.LittleEndian.AppendUint32(w.dst, math.Float32bits(c))
	}
	w.vertexTail(u, v, page)
}

// rect writes an axis-aligned device quad.
func (w *quadWriter) rect(l, t, r, b int, a AtlasLocator, al, at, ar, ab int) {
	fl, ft, fr, fb := float32(l), float32(t), float32(r), float32(b)
	w.vertex2D(fl, ft, al, at, a.Page)
	w.vertex2D(fl, fb, al, ab, a.Page)
	w.vertex2D(fr, ft, ar, at, a.Page)
	w.vertex2D(fr, fb, ar, ab, a.Page)
}

func (w *quadWriter) direct(a AtlasLocator, lt geom.Point, dx, dy int) {
	l, t := int(lt.X)+dx, int(lt.Y)+dy
	w.rect(l, t, l+a.Width(), t+a.Height(), a,
		int(a.Left), int(a.Top), int(a.Right), int(a.Bottom))
}

// directClipped writes the direct quad cut to clip. Texels map one to one
// to pixels, so the atlas rect shrinks by the same amounts. A glyph outside
// the clip becomes a zero quad.
func (w *quadWriter) directClipped(a AtlasLocator, lt geom.Point, dx, dy int, clip geom.IRect) {
	l, t := int(lt.X)+dx, int(lt.Y)+dy
	dev := geom.IRectLTRB(l, t, l+a.Width(), t+a.Height())
	if clip.Contains(dev) {
		w.direct(a, lt, dx, dy)
		return
	}
	cut, ok := dev.Intersect(clip)
	if !ok {
		// TODO: skip fully clipped glyphs once quad counts can shrink
		// after the op has sized its vertex buffer.
		w.dst = append(w.dst, make([]byte, VerticesPerGlyph*w.stride2D())...)
		return
	}
	al := int(a.Left) + cut.Left - dev.Left
	at := int(a.Top) + cut.Top - dev.Top
	ar := int(a.Right) - (dev.Right - cut.Right)
	ab := int(a.Bottom) - (dev.Bottom - cut.Bottom)
	w.rect(cut.Left, cut.Top, cut.Right, cut.Bottom, a, al, at, ar, ab)
}

func (w *quadWriter) stride2D() int {
	if w.hasColor {
		return pos2DSize + colorSize + uvSize
	}
	return pos2DSize + uvSize
}

// glyphCorners returns the creation-space corners of a glyph image with
// atlas rect a at lt.
func glyphCorners(a AtlasLocator, lt geom.Point) (l, t, r, b float32) {
	l, t = float32(lt.X), float32(lt.Y)
	return l, t, l + float32(a.Width()), t + float32(a.Height())
}

func mapAffine(m f32.Aff3, x, y float32) (float32, float32) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

func (w *quadWriter) affine(a AtlasLocator, lt geom.Point, m f32.Aff3) {
	l, t, r, b := glyphCorners(a, lt)
	al, at, ar, ab := int(a.Left), int(a.Top), int(a.Right), int(a.Bottom)
	x, y := mapAffine(m, l, t)
	w.vertex2D(x, y, al, at, a.Page)
	x, y = mapAffine(m, l, b)
	w.vertex2D(x, y, al, ab, a.Page)
	x, y = mapAffine(m, r, t)
	w.vertex2D(x, y, ar, at, a.Page)
	x, y = mapAffine(m, r, b)
	w.vertex2D(x, y, ar, ab, a.Page)
}

// perspective writes homogeneous positions; the rasterizer divides by the
// third coordinate.
func (w *quadWriter) perspective(a AtlasLocator, lt geom.Point, m mgl32.Mat3) {
	l, t, r, b := glyphCorners(a, lt)
	al, at, ar, ab := int(a.Left), int(a.Top), int(a.Right), int(a.Bottom)
	w.vertex3D(m.Mul3x1(mgl32.Vec3{l, t, 1}), al, at, a.Page)
	w.vertex3D(m.Mul3x1(mgl32.Vec3{l, b, 1}), al, ab, a.Page)
	w.vertex3D(m.Mul3x1(mgl32.Vec3{r, t, 1}), ar, at, a.Page)
	w.vertex3D(m.Mul3x1(mgl32.Vec3{r, b, 1}), ar, ab, a.Page)
}
