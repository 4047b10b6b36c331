package vertexfill

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/pathcov/geom"
)

type vertex struct {
	X, Y, Z float32
	Color   [4]uint8
	U, V    uint16
}

// decodeVertices splits a vertex buffer written by FillVertexData.
func decodeVertices(t *testing.T, b []byte, perspective, color bool) []vertex {
	t.Helper()
	stride := 12
	if perspective {
		stride += 4
	}
	if color {
		stride += 4
	}
	if len(b)%stride != 0 {
		t.Fatalf("buffer of %d bytes is not a multiple of stride %d", len(b), stride)
	}
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[off:])) }
	var out []vertex
	for off := 0; off < len(b); off += stride {
		var v vertex
		p := off
		v.X, v.Y = f(p), f(p+4)
		p += 8
		if perspective {
			v.Z = f(p)
			p += 4
		}
		if color {
			copy(v.Color[:], b[p:p+4])
			p += 4
		}
		v.U = binary.LittleEndian.Uint16(b[p:])
		v.V = binary.LittleEndian.Uint16(b[p+2:])
		out = append(out, v)
	}
	return out
}

var white = [4]uint8{255, 255, 255, 255}

// testGlyph is 6x8 with its origin 1 right of the left edge on the
// baseline, stored at (100, 50) in the atlas.
func testGlyph(page uint16) *Glyph {
	g := &Glyph{ID: 65, Bounds: geom.IRectLTRB(-1, -8, 5, 0)}
	g.atlas.Store(&AtlasLocator{Page: page, Left: 100, Top: 50, Right: 106, Bottom: 58})
	return g
}

func testFiller(format MaskFormat, glyphs ...*Glyph) *VertexFiller {
	origins := make([]geom.Point, len(glyphs))
	for i := range origins {
		origins[i] = geom.Pt(10+20*float64(i), 20)
	}
	return Make(format, geom.Identity(), true, glyphs, origins)
}

func quad(x0, y0, x1, y1 float32, color [4]uint8, u0, v0, u1, v1 uint16) []vertex {
	return []vertex{
		{X: x0, Y: y0, Color: color, U: u0, V: v0},
		{X: x0, Y: y1, Color: color, U: u0, V: v1},
		{X: x1, Y: y0, Color: color, U: u1, V: v0},
		{X: x1, Y: y1, Color: color, U: u1, V: v1},
	}
}

func TestOpMaskType(t *testing.T) {
	tests := []struct {
		format MaskFormat
		want   MaskType
	}{
		{FormatA8, MaskGrayscaleCoverage},
		{FormatLCD, MaskLCDCoverage},
		{FormatARGB, MaskColorBitmap},
	}
	for _, tt := range tests {
		v := NewVertexFiller(tt.format, geom.Identity(), true, geom.Rect{}, nil)
		if got := v.OpMaskType(); got != tt.want {
			t.Errorf("OpMaskType() = %v, want %v", got, tt.want)
		}
		if v.IsLCD() != (tt.format == FormatLCD) {
			t.Errorf("IsLCD() = %v for %v", v.IsLCD(), tt.want)
		}
	}
}

func TestVertexStride(t *testing.T) {
	persp := geom.Perspective(0.001, 0)
	tests := []struct {
		name   string
		format MaskFormat
		m      geom.Matrix
		want   int
	}{
		{"coverage 2D", FormatA8, geom.Identity(), 16},
		{"color 2D", FormatARGB, geom.Identity(), 12},
		{"coverage 3D", FormatA8, persp, 20},
		{"color 3D", FormatARGB, persp, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVertexFiller(tt.format, geom.Identity(), true, geom.Rect{}, nil)
			if got := v.VertexStride(tt.m); got != tt.want {
				t.Errorf("VertexStride() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVertexStrideMatchesFill(t *testing.T) {
	g := testGlyph(0)
	tests := []struct {
		name     string
		creation geom.Matrix
		position geom.Matrix
		want     int
	}{
		{"perspective creation", geom.Perspective(0.001, 0), geom.Identity(), 20},
		{"perspective position", geom.Identity(), geom.Perspective(0, 0.002), 20},
		{"affine", geom.Scale(2, 2), geom.Scale(3, 3), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Make(FormatA8, tt.creation, false, []*Glyph{g, g}, []geom.Point{{X: 1, Y: 2}, {X: 30, Y: 2}})
			stride := v.VertexStride(tt.position)
			if stride != tt.want {
				t.Errorf("VertexStride() = %d, want %d", stride, tt.want)
			}
			b := v.FillVertexData(nil, 0, 2, []*Glyph{g, g}, white, tt.position, geom.IRect{})
			if len(b) != 2*VerticesPerGlyph*stride {
				t.Errorf("wrote %d bytes for stride %d", len(b), stride)
			}
		})
	}
}

func TestCanUseDirect(t *testing.T) {
	tests := []struct {
		name     string
		creation geom.Matrix
		position geom.Matrix
		direct   bool
		want     bool
	}{
		{"same matrix", geom.Identity(), geom.Identity(), true, true},
		{"integer translation", geom.Identity(), geom.Translate(3, -4), true, true},
		{"fractional translation", geom.Identity(), geom.Translate(0.5, 0), true, false},
		{"scaled", geom.Identity(), geom.Scale(2, 2), true, false},
		{"same scale translated", geom.Scale(2, 2), geom.Scale(2, 2).PostTranslate(7, 1), true, true},
		{"perspective", geom.Identity(), geom.Perspective(0.001, 0), true, false},
		{"not rasterized for device", geom.Identity(), geom.Identity(), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVertexFiller(FormatA8, tt.creation, tt.direct, geom.Rect{}, nil)
			if got := v.CanUseDirect(tt.position); got != tt.want {
				t.Errorf("CanUseDirect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMakeBounds(t *testing.T) {
	v := testFiller(FormatA8, testGlyph(0), testGlyph(0))
	if v.Count() != 2 {
		t.Fatalf("Count() = %d", v.Count())
	}
	want := geom.RectLTRB(9, 12, 35, 20)
	if got := v.DeviceRect(geom.Identity()); got != want {
		t.Errorf("DeviceRect() = %v, want %v", got, want)
	}
	if got, want := v.DeviceRect(geom.Translate(3, 4)), geom.RectLTRB(12, 16, 38, 24); got != want {
		t.Errorf("translated DeviceRect() = %v, want %v", got, want)
	}
}

func TestDeviceRectViewDifference(t *testing.T) {
	v := NewVertexFiller(FormatA8, geom.Scale(2, 2), false, geom.RectLTRB(10, 10, 20, 20), nil)
	if got, want := v.DeviceRect(geom.Scale(4, 4)), geom.RectLTRB(20, 20, 40, 40); got != want {
		t.Errorf("DeviceRect() = %v, want %v", got, want)
	}
}

func TestFillDirect(t *testing.T) {
	v := testFiller(FormatA8, testGlyph(0))
	b := v.FillVertexData(nil, 0, 1, []*Glyph{testGlyph(0)}, white, geom.Translate(3, 4), geom.IRect{})
	if len(b) != VerticesPerGlyph*v.VertexStride(geom.Identity()) {
		t.Fatalf("len = %d", len(b))
	}
	want := quad(12, 16, 18, 24, white, 200, 100, 212, 116)
	if diff := cmp.Diff(want, decodeVertices(t, b, false, true)); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestFillDirectPageBits(t *testing.T) {
	g := testGlyph(3)
	v := testFiller(FormatARGB, g)
	b := v.FillVertexData(nil, 0, 1, []*Glyph{g}, white, geom.Identity(), geom.IRect{})
	want := quad(9, 12, 15, 20, [4]uint8{}, 201, 101, 213, 117)
	if diff := cmp.Diff(want, decodeVertices(t, b, false, false)); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestFillDirectClipped(t *testing.T) {
	g := testGlyph(0)
	v := testFiller(FormatA8, g)
	pos := geom.Translate(3, 4)
	red := [4]uint8{255, 0, 0, 255}

	t.Run("partial", func(t *testing.T) {
		b := v.FillVertexData(nil, 0, 1, []*Glyph{g}, red, pos, geom.IRectLTRB(14, 0, 100, 20))
		want := quad(14, 16, 18, 20, red, 204, 100, 212, 108)
		if diff := cmp.Diff(want, decodeVertices(t, b, false, true)); diff != "" {
			t.Errorf("vertices mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("inside", func(t *testing.T) {
		clipped := v.FillVertexData(nil, 0, 1, []*Glyph{g}, red, pos, geom.IRectLTRB(0, 0, 100, 100))
		unclipped := v.FillVertexData(nil, 0, 1, []*Glyph{g}, red, pos, geom.IRect{})
		if diff := cmp.Diff(unclipped, clipped); diff != "" {
			t.Errorf("clip containing the glyph changed it (-unclipped +clipped):\n%s", diff)
		}
	})
	t.Run("outside", func(t *testing.T) {
		b := v.FillVertexData(nil, 0, 1, []*Glyph{g}, red, pos, geom.IRectLTRB(0, 0, 5, 5))
		if diff := cmp.Diff(make([]byte, VerticesPerGlyph*16), b); diff != "" {
			t.Errorf("fully clipped glyph is not a zero quad:\n%s", diff)
		}
	})
}

func TestFillAffine(t *testing.T) {
	g := testGlyph(0)
	v := testFiller(FormatA8, g)
	if v.CanUseDirect(geom.Scale(2, 2)) {
		t.Fatal("scaled draw reported direct")
	}
	b := v.FillVertexData(nil, 0, 1, []*Glyph{g}, white, geom.Scale(2, 2), geom.IRectLTRB(0, 0, 1, 1))
	want := quad(18, 24, 30, 40, white, 200, 100, 212, 116)
	if diff := cmp.Diff(want, decodeVertices(t, b, false, true)); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestFillAffineNotDirect(t *testing.T) {
	g := testGlyph(0)
	v := Make(FormatA8, geom.Identity(), false, []*Glyph{g}, []geom.Point{{X: 10, Y: 20}})
	b := v.FillVertexData(nil, 0, 1, []*Glyph{g}, white, geom.Translate(3, 4), geom.IRect{})
	// The same positions as the direct quad, written through the matrix.
	want := quad(12, 16, 18, 24, white, 200, 100, 212, 116)
	if diff := cmp.Diff(want, decodeVertices(t, b, false, true)); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestFillPerspective(t *testing.T) {
	g := testGlyph(0)
	v := testFiller(FormatARGB, g)
	m := geom.Perspective(0.01, 0)
	b := v.FillVertexData(nil, 0, 1, []*Glyph{g}, white, m, geom.IRect{})
	if len(b) != VerticesPerGlyph*v.VertexStride(m) {
		t.Fatalf("len = %d, want %d", len(b), VerticesPerGlyph*v.VertexStride(m))
	}
	got := decodeVertices(t, b, true, false)
	corners := []geom.Point{{X: 9, Y: 12}, {X: 9, Y: 20}, {X: 15, Y: 12}, {X: 15, Y: 20}}
	for i, c := range corners {
		x, y, w := m.MapHomogeneous(c.X, c.Y)
		if math.Abs(float64(got[i].X)-x) > 1e-4 || math.Abs(float64(got[i].Y)-y) > 1e-4 || math.Abs(float64(got[i].Z)-w) > 1e-6 {
			t.Errorf("vertex %d = (%v, %v, %v), want (%v, %v, %v)", i, got[i].X, got[i].Y, got[i].Z, x, y, w)
		}
	}
	if got[3].U != 212 || got[3].V != 116 {
		t.Errorf("right-bottom UV = %d,%d", got[3].U, got[3].V)
	}
}

func TestFillSubrange(t *testing.T) {
	glyphs := []*Glyph{testGlyph(0), testGlyph(0), testGlyph(0)}
	v := testFiller(FormatARGB, glyphs...)
	prefix := []byte{1, 2, 3}
	b := v.FillVertexData(prefix, 1, 1, glyphs, white, geom.Identity(), geom.IRect{})
	if diff := cmp.Diff(prefix, b[:3]); diff != "" {
		t.Errorf("prefix overwritten:\n%s", diff)
	}
	want := quad(29, 12, 35, 20, [4]uint8{}, 200, 100, 212, 116)
	if diff := cmp.Diff(want, decodeVertices(t, b[3:], false, false)); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}
