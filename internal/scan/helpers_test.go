package scan

import (
	"testing"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/mask"
)

// newTestMask returns a zeroed A8 mask covering (0,0,w,h) and a blitter into it.
func newTestMask(t *testing.T, w, h int) (*mask.Mask, Blitter) {
	t.Helper()
	m := mask.New(geom.IRectWH(w, h), mask.A8)
	m.Image = make([]byte, m.ComputeImageSize())
	return &m, CoverageBlitter{Sink: MaskSink{M: &m}}
}

func at(m *mask.Mask, x, y int) uint8 { return m.AlphaAt(x, y) }

func countCovered(m *mask.Mask) int {
	n := 0
	for _, v := range m.Image {
		if v != 0 {
			n++
		}
	}
	return n
}

func rectPath(r geom.Rect, ft geom.FillType) *geom.Path {
	p := geom.NewPath()
	p.AddRect(r, geom.Clockwise)
	p.SetFillType(ft)
	return p
}

func linePath(x0, y0, x1, y1 float64) *geom.Path {
	p := geom.NewPath()
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	return p
}

// recordingBlitter logs calls for inspection.
type recordingBlitter struct {
	h     []blitHCall
	anti  []antiCall
	v     []blitVCall
	rects []geom.IRect
	pairs int
	masks []geom.IRect
}

type blitHCall struct{ x, y, width int }

type blitVCall struct {
	x, y, height int
	alpha        uint8
}

type antiCall struct {
	x, y  int
	alpha []uint8
	runs  []uint16
}

func (r *recordingBlitter) BlitH(x, y, width int) { r.h = append(r.h, blitHCall{x, y, width}) }

func (r *recordingBlitter) BlitAntiH(x, y int, alpha []uint8, runs []uint16) {
	r.anti = append(r.anti, antiCall{x, y, append([]uint8(nil), alpha...), append([]uint16(nil), runs...)})
}

func (r *recordingBlitter) BlitV(x, y, height int, alpha uint8) {
	r.v = append(r.v, blitVCall{x, y, height, alpha})
}

func (r *recordingBlitter) BlitRect(x, y, width, height int) {
	r.rects = append(r.rects, geom.IRectLTRB(x, y, x+width, y+height))
}

func (r *recordingBlitter) BlitAntiH2(int, int, uint8, uint8) { r.pairs++ }

func (r *recordingBlitter) BlitAntiV2(int, int, uint8, uint8) { r.pairs++ }

func (r *recordingBlitter) BlitMask(_ mask.Mask, clip geom.IRect) { r.masks = append(r.masks, clip) }
