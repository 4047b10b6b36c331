package geom

import (
	"math"
	"testing"
)

func TestMatrixType(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want MatrixType
	}{
		{"identity", Identity(), TypeIdentity},
		{"translate", Translate(3, 4), TypeTranslate},
		{"scale", Scale(2, 3), TypeScale},
		{"scale translate", Translate(1, 1).Multiply(Scale(2, 2)), TypeScale | TypeTranslate},
		{"skew", Skew(0.5, 0), TypeAffine},
		{"perspective", Perspective(0.001, 0), TypePerspective | TypeAffine | TypeScale | TypeTranslate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Type(); got != tt.want {
				t.Errorf("Type() = %b, want %b", got, tt.want)
			}
		})
	}
}

func TestMatrixRectStaysRect(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"scale", Scale(2, -3), true},
		{"zero scale", Scale(0, 1), false},
		{"quarter turn", Matrix{B: -1, D: 1, I: 1}, true},
		{"rotate 30", Rotate(math.Pi / 6), false},
		{"perspective", Perspective(0.01, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.RectStaysRect(); got != tt.want {
				t.Errorf("RectStaysRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	mats := []Matrix{
		Translate(5, -7),
		Scale(2, 4).Multiply(Rotate(0.3)),
		Translate(10, 20).Multiply(Skew(0.2, 0.1)),
		Perspective(0.002, 0.001).Multiply(Scale(3, 3)),
	}
	p := Pt(12.5, -3.25)
	for i, m := range mats {
		inv, ok := m.Invert()
		if !ok {
			t.Fatalf("matrix %d: Invert failed", i)
		}
		got := inv.MapPoint(m.MapPoint(p))
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("matrix %d: round trip = %v, want %v", i, got, p)
		}
	}
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("singular matrix inverted")
	}
}

func TestMatrixMinMaxScales(t *testing.T) {
	lo, hi := Scale(2, 5).MinMaxScales()
	if lo != 2 || hi != 5 {
		t.Errorf("scale(2,5) = %v, %v", lo, hi)
	}
	lo, hi = Scale(3, 3).Multiply(Rotate(0.7)).MinMaxScales()
	if math.Abs(lo-3) > 1e-9 || math.Abs(hi-3) > 1e-9 {
		t.Errorf("rotated uniform scale = %v, %v", lo, hi)
	}
	lo, hi = Perspective(0.1, 0).MinMaxScales()
	if lo != -1 || hi != -1 {
		t.Errorf("perspective = %v, %v, want -1, -1", lo, hi)
	}
}

func TestMatrixMapRect(t *testing.T) {
	r := RectLTRB(0, 0, 10, 20)
	got := Scale(-1, 2).MapRect(r)
	want := RectLTRB(-10, 0, 0, 40)
	if got != want {
		t.Errorf("MapRect = %v, want %v", got, want)
	}
	got = Matrix{B: -1, D: 1, I: 1}.MapRect(r)
	want = RectLTRB(-20, 0, 0, 10)
	if got != want {
		t.Errorf("quarter turn MapRect = %v, want %v", got, want)
	}
}
