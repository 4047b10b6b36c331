package maskcache

import (
	"math"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
)

type keyKind uint8

const (
	kindRRect keyKind = iota + 1
	kindRects
)

// Key identifies a cached blurred mask. Keys are comparable. RRect keys
// compare sigma and geometry by exact bit pattern.
type Key struct {
	kind   keyKind
	sigma  uint32
	style  pathcov.BlurStyle
	digest [12]uint64
}

// NewRRectKey returns the key for a blurred rounded rect in device space.
func NewRRectKey(sigma float32, style pathcov.BlurStyle, rr geom.RRect) Key {
	k := Key{kind: kindRRect, sigma: math.Float32bits(sigma), style: style}
	r := rr.Rect
	k.digest[0] = math.Float64bits(r.Left)
	k.digest[1] = math.Float64bits(r.Top)
	k.digest[2] = math.Float64bits(r.Right)
	k.digest[3] = math.Float64bits(r.Bottom)
	for i, rad := range rr.Radii {
		k.digest[4+2*i] = math.Float64bits(rad.X)
		k.digest[5+2*i] = math.Float64bits(rad.Y)
	}
	return k
}

// rectsKeyScale is the sub-pixel resolution of a Rects key.
const rectsKeyScale = 256

// quantize returns v in 1/rectsKeyScale pixel units.
func quantize(v float64) int64 { return int64(math.Round(v * rectsKeyScale)) }

// NewRectsKey returns the key for one rect or two nested rects. The digest
// holds rect sizes, the offset of rect 0 within its rounded-out integer
// bounds and, for two rects, the offset between them, all quantized to
// 1/256 pixel, so rects moved by whole pixels share a key. It fails for any
// other rect count.
func NewRectsKey(sigma float32, style pathcov.BlurStyle, rects []geom.Rect) (Key, bool) {
	if len(rects) != 1 && len(rects) != 2 {
		return Key{}, false
	}
	k := Key{kind: kindRects, sigma: math.Float32bits(sigma), style: style}
	var q [2][4]int64
	for i, r := range rects {
		q[i] = [4]int64{quantize(r.Left), quantize(r.Top), quantize(r.Right), quantize(r.Bottom)}
	}
	ir := rects[0].RoundOut()
	k.digest[0] = uint64(q[0][2] - q[0][0])
	k.digest[1] = uint64(q[0][3] - q[0][1])
	if len(rects) == 2 {
		k.digest[2] = uint64(q[1][2] - q[1][0])
		k.digest[3] = uint64(q[1][3] - q[1][1])
		k.digest[4] = uint64(q[0][0] - q[1][0])
		k.digest[5] = uint64(q[0][1] - q[1][1])
	}
	k.digest[6] = uint64(q[0][0] - int64(ir.Left)*rectsKeyScale)
	k.digest[7] = uint64(q[0][1] - int64(ir.Top)*rectsKeyScale)
	k.digest[8] = uint64(len(rects))
	return k, true
}
