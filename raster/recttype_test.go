package raster

import (
	"math"
	"testing"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
)

func TestComputeRectType(t *testing.T) {
	rect := geom.RectLTRB(0, 0, 10, 10)
	tests := []struct {
		name       string
		rect       geom.Rect
		paint      func(p *pathcov.Paint)
		m          geom.Matrix
		want       RectType
		wantStroke geom.Point
	}{
		{"fill", rect, func(p *pathcov.Paint) {}, geom.Identity(), RectFill, geom.Point{}},
		{"fill scaled", rect, func(p *pathcov.Paint) {}, geom.Scale(2, 3), RectFill, geom.Point{}},
		{"hairline", rect, func(p *pathcov.Paint) { p.Style = pathcov.StyleStroke }, geom.Identity(), RectHair, geom.Point{}},
		{"stroke", rect, func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStroke
			p.StrokeWidth = 2
		}, geom.Identity(), RectStroke, geom.Pt(2, 2)},
		{"stroke scaled", rect, func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStroke
			p.StrokeWidth = 2
		}, geom.Scale(2, -3), RectStroke, geom.Pt(4, 6)},
		{"stroke and fill", rect, func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStrokeAndFill
			p.StrokeWidth = 2
		}, geom.Identity(), RectPath, geom.Point{}},
		{"stroke and fill without width", rect, func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStrokeAndFill
		}, geom.Identity(), RectFill, geom.Point{}},
		{"round join", rect, func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStroke
			p.StrokeWidth = 2
			p.Join = pathcov.JoinRound
		}, geom.Identity(), RectPath, geom.Point{}},
		{"miter limit below sqrt2", rect, func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStroke
			p.StrokeWidth = 2
			p.MiterLimit = 1.4
		}, geom.Identity(), RectPath, geom.Point{}},
		{"empty stroked rect", geom.RectLTRB(0, 0, 10, 0), func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStroke
			p.StrokeWidth = 2
		}, geom.Identity(), RectPath, geom.Point{}},
		{"dash", rect, func(p *pathcov.Paint) {
			p.Style = pathcov.StyleStroke
			p.StrokeWidth = 2
			p.PathEffect = pathcov.NewDash(4, 4)
		}, geom.Identity(), RectPath, geom.Point{}},
		{"mask filter", rect, func(p *pathcov.Paint) { p.MaskFilter = &solidFilter{} }, geom.Identity(), RectPath, geom.Point{}},
		{"rotated", rect, func(p *pathcov.Paint) {}, geom.Rotate(0.3), RectPath, geom.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pathcov.NewPaint()
			tt.paint(p)
			got, stroke := ComputeRectType(tt.rect, p, tt.m)
			if got != tt.want || stroke != tt.wantStroke {
				t.Errorf("ComputeRectType = %v %v, want %v %v", got, stroke, tt.want, tt.wantStroke)
			}
			again, stroke2 := ComputeRectType(tt.rect, p, tt.m)
			if again != got || stroke2 != stroke {
				t.Error("ComputeRectType is not repeatable")
			}
		})
	}
}

func TestTreatAsHairline(t *testing.T) {
	tests := []struct {
		name         string
		paint        *pathcov.Paint
		m            geom.Matrix
		wantOK       bool
		wantCoverage float64
	}{
		{"fill", fillPaint(true), geom.Identity(), false, 0},
		{"zero width", strokePaint(0, false), geom.Identity(), true, 1},
		{"zero width perspective", strokePaint(0, true), geom.Perspective(0.01, 0), true, 1},
		{"one pixel", strokePaint(1, true), geom.Identity(), true, 1},
		{"half pixel", strokePaint(0.5, true), geom.Identity(), true, 0.5},
		{"scaled down", strokePaint(3, true), geom.Scale(0.25, 0.25), true, 0.75},
		{"just over a pixel", strokePaint(1, true), geom.Scale(1.01, 1), false, 0},
		{"aliased", strokePaint(0.5, false), geom.Identity(), false, 0},
		{"perspective", strokePaint(0.5, true), geom.Perspective(0.01, 0), false, 0},
		{"rotated", strokePaint(0.5, true), geom.Rotate(math.Pi / 4), true, 0.75 * math.Sqrt2 / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coverage, ok := TreatAsHairline(tt.paint, tt.m)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(coverage-tt.wantCoverage) > 1e-9 {
				t.Errorf("coverage = %v, want %v", coverage, tt.wantCoverage)
			}
		})
	}
}

func TestModulateAlpha(t *testing.T) {
	tests := []struct {
		alpha    uint8
		coverage float64
		want     uint8
	}{
		{255, 1, 255},
		{200, 1, 200},
		{255, 0.5, 127},
		{100, 0.25, 25},
		{255, 0.001, 0},
	}
	for _, tt := range tests {
		if got := modulateAlpha(tt.alpha, tt.coverage); got != tt.want {
			t.Errorf("modulateAlpha(%d, %v) = %d, want %d", tt.alpha, tt.coverage, got, tt.want)
		}
	}
}

func TestRectTypeString(t *testing.T) {
	for rt, want := range map[RectType]string{RectHair: "Hair", RectFill: "Fill", RectStroke: "Stroke", RectPath: "Path"} {
		if got := rt.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", rt, got, want)
		}
	}
}
