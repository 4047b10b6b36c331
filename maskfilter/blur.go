package maskfilter

import (
	"sync"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/maskcache"
	"github.com/gogpu/pathcov/mask"
)

// MaxSigma bounds the device-space sigma of any blur.
const MaxSigma = 532

// Blur is a Gaussian blur mask filter.
type Blur struct {
	// Sigma is the standard deviation, in local units when RespectCTM is set
	// and in device pixels otherwise.
	Sigma float64
	Style pathcov.BlurStyle
	// RespectCTM scales Sigma by the matrix passed to the filter.
	RespectCTM bool
	// Cache, when set, memoizes the masks of the rrect and rects routes.
	Cache *maskcache.Cache
}

var (
	_ pathcov.RRectMaskFilter = (*Blur)(nil)
	_ pathcov.RectsMaskFilter = (*Blur)(nil)
)

// NewBlur returns a blur filter, or nil when sigma is not a positive finite
// number.
func NewBlur(style pathcov.BlurStyle, sigma float64, respectCTM bool) *Blur {
	if !(sigma > 0) || sigma > 1e30 {
		return nil
	}
	return &Blur{Sigma: sigma, Style: style, RespectCTM: respectCTM}
}

// WithCache sets the mask cache and returns b.
func (b *Blur) WithCache(c *maskcache.Cache) *Blur {
	b.Cache = c
	return b
}

// Format returns mask.A8.
func (b *Blur) Format() mask.Format { return mask.A8 }

// DeviceSigma returns the sigma applied in device space under m.
func (b *Blur) DeviceSigma(m geom.Matrix) float64 {
	s := b.Sigma
	if b.RespectCTM {
		s = m.MapRadius(s)
	}
	return min(s, MaxSigma)
}

// FilterMask blurs src into dst. The destination extends past src by the
// kernel radius on every side, except for BlurInner which keeps src's
// bounds.
func (b *Blur) FilterMask(dst *mask.Builder, src mask.Mask, m geom.Matrix, margin *geom.IPoint) bool {
	sigma := b.DeviceSigma(m)
	if !(sigma > 0) {
		return false
	}
	pad := KernelRadius(sigma)
	if margin != nil {
		*margin = geom.IPoint{X: pad, Y: pad}
	}
	bounds := src.Bounds.Outset(pad, pad)
	if b.Style == pathcov.BlurInner {
		bounds = src.Bounds
	}
	dst.SetBounds(bounds, mask.A8)
	if src.Image == nil {
		return true
	}
	if err := dst.AllocImage(); err != nil {
		pathcov.Logger().Debug("maskfilter: blur alloc failed", "bounds", bounds, "err", err)
		return false
	}
	blurInto(dst.Mask(), &src, CachedGaussianKernel(sigma))
	applyStyle(dst.Mask(), &src, b.Style)
	return true
}

// blurInto writes the separable blur of src's coverage into dst, sampling
// src in dst's coordinate space.
func blurInto(dst, src *mask.Mask, kernel []float32) {
	w, h := dst.Bounds.Width(), dst.Bounds.Height()
	half := len(kernel) / 2
	l, t := dst.Bounds.Left, dst.Bounds.Top

	in := getTempBuffer(w * h)
	defer putTempBuffer(in)
	tmp := getTempBuffer(w * h)
	defer putTempBuffer(tmp)

	for y := range h {
		row := in[y*w : (y+1)*w]
		for x := range w {
			row[x] = float32(src.AlphaAt(l+x, t+y))
		}
	}

	// Horizontal pass.
	for y := range h {
		row := in[y*w : (y+1)*w]
		out := tmp[y*w : (y+1)*w]
		for x := range w {
			var sum float32
			for k, kv := range kernel {
				sx := x + k - half
				if sx >= 0 && sx < w {
					sum += row[sx] * kv
				}
			}
			out[x] = sum
		}
	}

	// Vertical pass.
	for y := range h {
		dstRow := dst.Row(t + y)
		for x := range w {
			var sum float32
			for k, kv := range kernel {
				sy := y + k - half
				if sy >= 0 && sy < h {
					sum += tmp[sy*w+x] * kv
				}
			}
			dstRow[x] = clampUint8(sum)
		}
	}
}

// applyStyle combines the blurred dst with the unblurred src coverage.
func applyStyle(dst, src *mask.Mask, style pathcov.BlurStyle) {
	if style == pathcov.BlurNormal {
		return
	}
	for y := dst.Bounds.Top; y < dst.Bounds.Bottom; y++ {
		row := dst.Row(y)
		for i := range dst.Bounds.Width() {
			s := uint32(src.AlphaAt(dst.Bounds.Left+i, y))
			d := uint32(row[i])
			switch style {
			case pathcov.BlurSolid:
				d = s + mul255(d, 255-s)
			case pathcov.BlurOuter:
				d = mul255(d, 255-s)
			case pathcov.BlurInner:
				d = mul255(d, s)
			}
			row[i] = uint8(d)
		}
	}
}

// mul255 returns round(a*b/255) for a, b in [0, 255].
func mul255(a, b uint32) uint32 {
	p := a*b + 128
	return (p + p>>8) >> 8
}

func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// floatBuffer wraps a slice for sync.Pool.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 256*256)}
	},
}

// getTempBuffer returns a zeroed buffer of at least size elements.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

func putTempBuffer(buf []float32) {
	if cap(buf) <= 4*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
