package scan

import (
	"testing"

	"github.com/gogpu/pathcov/geom"
)

func TestFillPath(t *testing.T) {
	tests := []struct {
		name string
		path *geom.Path
		clip geom.IRect
		want int
	}{
		{"rect", rectPath(geom.RectLTRB(2, 3, 8, 9), geom.FillWinding), geom.IRectWH(12, 12), 36},
		{"half pixel edges", rectPath(geom.RectLTRB(0.5, 0.5, 2.5, 1.5), geom.FillWinding), geom.IRectWH(4, 4), 2},
		{"clipped", rectPath(geom.RectLTRB(-10, -10, 100, 100), geom.FillWinding), geom.IRectLTRB(1, 1, 4, 3), 6},
		{"inverse", rectPath(geom.RectLTRB(2, 2, 6, 6), geom.FillInverseWinding), geom.IRectWH(8, 8), 48},
		{"inverse outside clip", rectPath(geom.RectLTRB(20, 20, 30, 30), geom.FillInverseWinding), geom.IRectWH(4, 4), 16},
		{"empty", geom.NewPath(), geom.IRectWH(4, 4), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, b := newTestMask(t, 12, 12)
			FillPath(tt.path, tt.clip, b)
			if got := countCovered(m); got != tt.want {
				t.Errorf("covered %d pixels, want %d", got, tt.want)
			}
			for i, v := range m.Image {
				if v != 0 && v != 0xFF {
					t.Fatalf("pixel %d has partial coverage %d", i, v)
				}
			}
		})
	}
}

func nestedRects(ft geom.FillType) *geom.Path {
	p := geom.NewPath()
	p.AddRect(geom.RectLTRB(0, 0, 8, 8), geom.Clockwise)
	p.AddRect(geom.RectLTRB(2, 2, 6, 6), geom.Clockwise)
	p.SetFillType(ft)
	return p
}

func TestFillPathFillRules(t *testing.T) {
	tests := []struct {
		ft   geom.FillType
		want int
	}{
		{geom.FillWinding, 64},
		{geom.FillEvenOdd, 48},
		{geom.FillInverseEvenOdd, 16},
	}
	for _, tt := range tests {
		m, b := newTestMask(t, 8, 8)
		FillPath(nestedRects(tt.ft), geom.IRectWH(8, 8), b)
		if got := countCovered(m); got != tt.want {
			t.Errorf("fill type %v: covered %d, want %d", tt.ft, got, tt.want)
		}
	}
}

func TestAntiFillPathAligned(t *testing.T) {
	m, b := newTestMask(t, 6, 6)
	AntiFillPath(rectPath(geom.RectLTRB(1, 1, 5, 5), geom.FillWinding), geom.IRectWH(6, 6), b)
	for y := range 6 {
		for x := range 6 {
			want := uint8(0)
			if x >= 1 && x < 5 && y >= 1 && y < 5 {
				want = 0xFF
			}
			if got := at(m, x, y); got != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestAntiFillPathPartialColumn(t *testing.T) {
	m, b := newTestMask(t, 4, 2)
	AntiFillPath(rectPath(geom.RectLTRB(0, 0, 2.5, 2), geom.FillWinding), geom.IRectWH(4, 2), b)
	for y := range 2 {
		if at(m, 0, y) != 0xFF || at(m, 1, y) != 0xFF {
			t.Errorf("row %d interior = %d %d", y, at(m, 0, y), at(m, 1, y))
		}
		if got := at(m, 2, y); got != 128 {
			t.Errorf("row %d half column = %d, want 128", y, got)
		}
		if got := at(m, 3, y); got != 0 {
			t.Errorf("row %d outside = %d", y, got)
		}
	}
}

func TestAntiFillPathInverse(t *testing.T) {
	m, b := newTestMask(t, 8, 8)
	AntiFillPath(rectPath(geom.RectLTRB(2, 2, 6, 6), geom.FillInverseWinding), geom.IRectWH(8, 8), b)
	if got := countCovered(m); got != 48 {
		t.Errorf("covered %d pixels, want 48", got)
	}
	if at(m, 3, 3) != 0 || at(m, 0, 0) != 0xFF || at(m, 7, 7) != 0xFF {
		t.Errorf("inverse coverage wrong: center %d corner %d %d", at(m, 3, 3), at(m, 0, 0), at(m, 7, 7))
	}
}

func TestAntiFillPathTriangleIsMonotone(t *testing.T) {
	p := geom.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(8, 0)
	p.LineTo(0, 8)
	p.Close()
	m, b := newTestMask(t, 8, 8)
	AntiFillPath(p, geom.IRectWH(8, 8), b)

	// Coverage never increases moving right along a row.
	for y := range 8 {
		for x := 1; x < 8; x++ {
			if at(m, x, y) > at(m, x-1, y) {
				t.Fatalf("row %d: (%d)=%d > (%d)=%d", y, x, at(m, x, y), x-1, at(m, x-1, y))
			}
		}
	}
	if at(m, 0, 0) != 0xFF || at(m, 7, 7) != 0 {
		t.Errorf("corners = %d %d", at(m, 0, 0), at(m, 7, 7))
	}
}
