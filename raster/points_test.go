package raster

import (
	"testing"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/google/go-cmp/cmp"
)

type ovalRecorder struct{ ovals []geom.Rect }

func (r *ovalRecorder) DrawOval(oval geom.Rect, p *pathcov.Paint) {
	if p.Style != pathcov.StyleFill {
		panic("oval drawn with a stroke paint")
	}
	r.ovals = append(r.ovals, oval)
}

// countingDash counts AsPoints calls on a dash effect.
type countingDash struct {
	*pathcov.Dash
	asPoints int
}

func (c *countingDash) AsPoints(results *pathcov.PointData, src *geom.Path, rec *pathcov.StrokeRec, m geom.Matrix, cull *geom.Rect) bool {
	c.asPoints++
	return c.Dash.AsPoints(results, src, rec, m, cull)
}

func TestDrawPointsSquares(t *testing.T) {
	d, m := newMaskDraw(t, 10, 10)
	p := strokePaint(2, false)
	d.DrawDevicePoints(PointsMode, []geom.Point{{X: 3, Y: 3}, {X: 7, Y: 7}}, p, nil)
	if got := countCovered(m); got != 8 {
		t.Errorf("covered %d, want 8", got)
	}
	if m.AlphaAt(2, 2) != 0xFF || m.AlphaAt(7, 7) != 0xFF || m.AlphaAt(4, 4) != 0 {
		t.Error("dots misplaced")
	}
}

func TestDrawPointsRoundToDevice(t *testing.T) {
	d, m := newMaskDraw(t, 10, 10)
	p := strokePaint(2, true)
	p.Cap = pathcov.CapRound
	var dev ovalRecorder
	d.DrawDevicePoints(PointsMode, []geom.Point{{X: 3, Y: 3}, {X: 7, Y: 5}}, p, &dev)
	want := []geom.Rect{geom.RectLTRB(2, 2, 4, 4), geom.RectLTRB(6, 4, 8, 6)}
	if diff := cmp.Diff(want, dev.ovals); diff != "" {
		t.Errorf("ovals mismatch (-want +got):\n%s", diff)
	}
	if countCovered(m) != 0 {
		t.Error("round dots rasterized despite a device")
	}
}

func TestDrawPointsRoundCircles(t *testing.T) {
	d, m := newMaskDraw(t, 20, 20)
	p := strokePaint(4, false)
	p.Cap = pathcov.CapRound
	d.DrawDevicePoints(PointsMode, []geom.Point{{X: 5, Y: 5}, {X: 14, Y: 12}}, p, nil)
	// Pixel centers within radius 2 of each point.
	if got := countCovered(m); got != 24 {
		t.Errorf("covered %d, want 24", got)
	}
	if m.AlphaAt(4, 4) != 0xFF || m.AlphaAt(13, 11) != 0xFF || m.AlphaAt(3, 3) != 0 {
		t.Error("circles misplaced")
	}
}

func TestDrawHairlinePoints(t *testing.T) {
	d, m := newMaskDraw(t, 10, 10)
	d.DrawDevicePoints(PointsMode, []geom.Point{{X: 3.5, Y: 3.5}, {X: 7.2, Y: 7.9}}, strokePaint(0, false), nil)
	if got := countCovered(m); got != 2 {
		t.Errorf("covered %d, want 2", got)
	}
	if m.AlphaAt(3, 3) != 0xFF || m.AlphaAt(7, 7) != 0xFF {
		t.Error("hairline dots misplaced")
	}
}

func TestDrawHairlinePointsThroughCTM(t *testing.T) {
	d, m := newMaskDraw(t, 10, 10)
	d.CTM = geom.Translate(2, 1)
	p := strokePaint(0, false)
	p.Cap = pathcov.CapRound
	d.DrawDevicePoints(PointsMode, []geom.Point{{X: 1.5, Y: 1.5}}, p, nil)
	if countCovered(m) != 1 || m.AlphaAt(3, 2) != 0xFF {
		t.Error("round hairline dot not mapped to one device pixel")
	}
}

func TestDrawHairlinePointsAntiAlias(t *testing.T) {
	d, m := newMaskDraw(t, 10, 10)
	d.DrawDevicePoints(PointsMode, []geom.Point{{X: 4.5, Y: 4.5}}, strokePaint(0, true), nil)
	if countCovered(m) != 1 || m.AlphaAt(4, 4) != 0xFF {
		t.Error("centered antialiased dot should cover one pixel")
	}

	d, m = newMaskDraw(t, 10, 10)
	d.DrawDevicePoints(PointsMode, []geom.Point{{X: 4, Y: 4}}, strokePaint(0, true), nil)
	if got := countCovered(m); got != 4 {
		t.Errorf("covered %d, want 4", got)
	}
	if a := m.AlphaAt(3, 3); a < 60 || a > 68 {
		t.Errorf("quarter coverage alpha = %d", a)
	}
}

func TestDrawLinesDropsOddPoint(t *testing.T) {
	d, m := newMaskDraw(t, 10, 10)
	pts := []geom.Point{{X: 1, Y: 2}, {X: 9, Y: 2}, {X: 5, Y: 9}}
	d.DrawDevicePoints(LinesMode, pts, strokePaint(2, false), nil)
	if got := countCovered(m); got != 16 {
		t.Errorf("covered %d, want 16", got)
	}
}

func TestDrawPolygonConnectsPoints(t *testing.T) {
	d, m := newMaskDraw(t, 12, 12)
	pts := []geom.Point{{X: 1, Y: 2}, {X: 9, Y: 2}, {X: 9, Y: 10}}
	d.DrawDevicePoints(PolygonMode, pts, strokePaint(2, false), nil)
	// Two butt-capped segments of 8x2 pixels overlapping in one pixel.
	if got := countCovered(m); got != 16+16-1 {
		t.Errorf("covered %d, want 31", got)
	}
	if m.AlphaAt(8, 9) != 0xFF {
		t.Error("second segment missing")
	}
}

func TestDrawDashedLineAsPoints(t *testing.T) {
	d, m := newMaskDraw(t, 32, 32)
	dash := &countingDash{Dash: pathcov.NewDash(4, 4).WithOffset(2)}
	p := strokePaint(4, false)
	p.PathEffect = dash
	d.DrawDevicePoints(LinesMode, []geom.Point{{X: 0, Y: 10}, {X: 20, Y: 10}}, p, nil)
	if dash.asPoints != 1 {
		t.Fatalf("AsPoints called %d times, want 1", dash.asPoints)
	}
	// Dots at x=8 and x=16 plus the partial dash [0, 2].
	if got := countCovered(m); got != 16+16+8 {
		t.Errorf("covered %d, want 40", got)
	}
	for _, pt := range []geom.IPoint{{X: 0, Y: 8}, {X: 6, Y: 8}, {X: 9, Y: 11}, {X: 17, Y: 10}} {
		if m.AlphaAt(pt.X, pt.Y) != 0xFF {
			t.Errorf("(%d,%d) not covered", pt.X, pt.Y)
		}
	}
	for _, pt := range []geom.IPoint{{X: 4, Y: 10}, {X: 12, Y: 10}, {X: 18, Y: 10}} {
		if m.AlphaAt(pt.X, pt.Y) != 0 {
			t.Errorf("gap (%d,%d) covered", pt.X, pt.Y)
		}
	}
}

func TestDrawDashedLineFallsBack(t *testing.T) {
	d, m := newMaskDraw(t, 32, 32)
	dash := &countingDash{Dash: pathcov.NewDash(3, 5)}
	p := strokePaint(2, false)
	p.PathEffect = dash
	d.DrawDevicePoints(LinesMode, []geom.Point{{X: 0, Y: 10}, {X: 16, Y: 10}}, p, nil)
	if dash.asPoints != 1 {
		t.Fatalf("AsPoints called %d times, want 1", dash.asPoints)
	}
	// Dashes [0,3] and [8,11] stroked two pixels high.
	if got := countCovered(m); got != 12 {
		t.Errorf("covered %d, want 12", got)
	}
}

func TestDrawDashedCircleDots(t *testing.T) {
	d, m := newMaskDraw(t, 40, 20)
	p := strokePaint(4, false)
	p.Cap = pathcov.CapRound
	p.PathEffect = pathcov.NewDash(0, 10)
	d.DrawDevicePoints(LinesMode, []geom.Point{{X: 5, Y: 10}, {X: 25, Y: 10}}, p, nil)
	// Three dots of 12 pixels each at x = 5, 15, 25.
	if got := countCovered(m); got != 36 {
		t.Errorf("covered %d, want 36", got)
	}
}

func TestPointModeString(t *testing.T) {
	if PointsMode.String() != "Points" || LinesMode.String() != "Lines" || PolygonMode.String() != "Polygon" {
		t.Error("unexpected PointMode names")
	}
}
