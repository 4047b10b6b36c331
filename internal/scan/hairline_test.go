package scan

import (
	"testing"

	"github.com/gogpu/pathcov/geom"
)

func rowCovered(m interface{ AlphaAt(x, y int) uint8 }, y, w int) []int {
	var xs []int
	for x := range w {
		if m.AlphaAt(x, y) != 0 {
			xs = append(xs, x)
		}
	}
	return xs
}

func TestHairPathCaps(t *testing.T) {
	tests := []struct {
		name       string
		cap        Cap
		first, end int
	}{
		{"butt", CapButt, 3, 7},
		{"square", CapSquare, 2, 8},
		{"round", CapRound, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, b := newTestMask(t, 12, 12)
			HairPath(linePath(2.6, 10.5, 7.4, 10.5), tt.cap, geom.IRectWH(12, 12), b)
			xs := rowCovered(m, 10, 12)
			if len(xs) == 0 || xs[0] != tt.first || xs[len(xs)-1] != tt.end-1 || len(xs) != tt.end-tt.first {
				t.Errorf("row 10 covers %v, want [%d,%d)", xs, tt.first, tt.end)
			}
			if got := countCovered(m); got != len(xs) {
				t.Errorf("pixels outside row 10 covered: %d total", got)
			}
		})
	}
}

func TestHairPathVertical(t *testing.T) {
	m, b := newTestMask(t, 8, 8)
	HairPath(linePath(5.5, 1, 5.5, 6), CapButt, geom.IRectWH(8, 8), b)
	for y := 1; y < 6; y++ {
		if at(m, 5, y) != 0xFF {
			t.Errorf("(5,%d) not covered", y)
		}
	}
	if got := countCovered(m); got != 5 {
		t.Errorf("covered %d, want 5", got)
	}
}

func TestHairPathDiagonal(t *testing.T) {
	m, b := newTestMask(t, 8, 8)
	HairPath(linePath(0.5, 0.5, 4.5, 4.5), CapButt, geom.IRectWH(8, 8), b)
	for i := range 4 {
		if at(m, i, i) != 0xFF {
			t.Errorf("(%d,%d) not covered", i, i)
		}
	}
	if got := countCovered(m); got != 4 {
		t.Errorf("covered %d, want 4", got)
	}
}

func TestHairPathClosedContour(t *testing.T) {
	m, b := newTestMask(t, 10, 10)
	HairPath(rectPath(geom.RectLTRB(1.5, 1.5, 6.5, 6.5), geom.FillWinding), CapSquare, geom.IRectWH(10, 10), b)
	if at(m, 1, 1) != 0xFF || at(m, 6, 1) != 0xFF || at(m, 1, 6) != 0xFF || at(m, 3, 3) != 0 {
		t.Errorf("outline corners %d %d %d interior %d", at(m, 1, 1), at(m, 6, 1), at(m, 1, 6), at(m, 3, 3))
	}
	if got := countCovered(m); got != 20 {
		t.Errorf("covered %d, want 20", got)
	}
}

func TestHairPathZeroLengthDot(t *testing.T) {
	p := geom.NewPath()
	p.MoveTo(3.5, 3.5)
	p.LineTo(3.5, 3.5)

	m, b := newTestMask(t, 8, 8)
	HairPath(p, CapButt, geom.IRectWH(8, 8), b)
	if countCovered(m) != 0 {
		t.Error("butt cap drew a zero-length line")
	}
	HairPath(p, CapSquare, geom.IRectWH(8, 8), b)
	if at(m, 3, 3) != 0xFF || countCovered(m) != 1 {
		t.Errorf("square cap dot covered %d pixels", countCovered(m))
	}
}

func TestAntiHairPathAxisAligned(t *testing.T) {
	m, b := newTestMask(t, 12, 12)
	AntiHairPath(linePath(2, 10.5, 8, 10.5), CapButt, geom.IRectWH(12, 12), b)
	for x := 2; x < 8; x++ {
		if got := at(m, x, 10); got != 0xFF {
			t.Errorf("(%d,10) = %d, want 255", x, got)
		}
	}
	if got := countCovered(m); got != 6 {
		t.Errorf("covered %d, want 6", got)
	}

	m, b = newTestMask(t, 8, 8)
	AntiHairPath(linePath(5.5, 1, 5.5, 6), CapButt, geom.IRectWH(8, 8), b)
	for y := 1; y < 6; y++ {
		if got := at(m, 5, y); got != 0xFF {
			t.Errorf("(5,%d) = %d, want 255", y, got)
		}
	}
	if got := countCovered(m); got != 5 {
		t.Errorf("covered %d, want 5", got)
	}
}

func TestAntiHairPathSplitsBetweenRows(t *testing.T) {
	m, b := newTestMask(t, 10, 10)
	AntiHairPath(linePath(-5, 0.25, 5, 0.25), CapButt, geom.IRectWH(10, 10), b)
	for x := range 5 {
		if got := at(m, x, 0); got != 192 {
			t.Errorf("(%d,0) = %d, want 192", x, got)
		}
	}
	if got := countCovered(m); got != 5 {
		t.Errorf("covered %d, want 5", got)
	}
}

func TestAntiHairPathDiagonalStaysNearLine(t *testing.T) {
	m, b := newTestMask(t, 10, 10)
	AntiHairPath(linePath(0.5, 0.5, 8.5, 8.5), CapButt, geom.IRectWH(10, 10), b)
	n := 0
	for y := range 10 {
		for x := range 10 {
			if at(m, x, y) == 0 {
				continue
			}
			n++
			if d := x - y; d < -1 || d > 1 {
				t.Errorf("(%d,%d) covered far from the diagonal", x, y)
			}
		}
	}
	if n < 8 {
		t.Errorf("only %d pixels covered", n)
	}
}
