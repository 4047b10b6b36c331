// Package mask defines coverage masks: an image of per-pixel coverage plus
// its device-space bounds, row stride and pixel format.
//
// A Builder owns the image while a mask is being produced. Finalize hands the
// image over to a Mask and leaves the builder empty, so one buffer never has
// two owners.
package mask

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/pathcov/geom"
)

// Format is the pixel encoding of a mask image.
type Format uint8

// Mask formats.
const (
	// BW is one bit per pixel, most significant bit first.
	BW Format = iota
	// A8 is one coverage byte per pixel.
	A8
	// LCD16 is one little-endian RGB565 coverage triple per pixel.
	LCD16
	// ARGB32 is four bytes per pixel in R, G, B, A order, premultiplied.
	ARGB32
	// ThreeD is three consecutive A8 planes: alpha, multiply and add.
	ThreeD
	// SDF is one byte per pixel of signed distance, 128 at the edge.
	SDF
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case BW:
		return "BW"
	case A8:
		return "A8"
	case LCD16:
		return "LCD16"
	case ARGB32:
		return "ARGB32"
	case ThreeD:
		return "3D"
	case SDF:
		return "SDF"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ErrTooLarge is returned when a mask's image size does not fit in memory.
var ErrTooLarge = errors.New("mask: image size overflows")

// ErrEmpty is returned when a mask has empty bounds.
var ErrEmpty = errors.New("mask: empty bounds")

// Mask is an image of coverage values positioned in device space.
type Mask struct {
	// Image holds the pixels, nil when only bounds were computed.
	Image    []byte
	Bounds   geom.IRect
	RowBytes int
	Format   Format
}

// New returns a mask with computed row bytes and no image.
func New(bounds geom.IRect, f Format) Mask {
	return Mask{Bounds: bounds, Format: f, RowBytes: RowBytesFor(bounds.Width(), f)}
}

// RowBytesFor returns the stride for width pixels of format f.
func RowBytesFor(width int, f Format) int {
	if width <= 0 {
		return 0
	}
	switch f {
	case BW:
		return (width + 7) >> 3
	case LCD16:
		return width * 2
	case ARGB32:
		return width * 4
	default:
		return width
	}
}

// IsEmpty reports whether the bounds are empty.
func (m *Mask) IsEmpty() bool { return m.Bounds.IsEmpty() }

// ComputeImageSize returns RowBytes*Height for a single plane, or 0 if the
// product does not fit in an int32, the addressable size of a mask.
func (m *Mask) ComputeImageSize() int {
	return safeSize(int64(m.RowBytes), m.Bounds.Height64(), 1)
}

// ComputeTotalImageSize is ComputeImageSize times three for ThreeD masks.
func (m *Mask) ComputeTotalImageSize() int {
	planes := int64(1)
	if m.Format == ThreeD {
		planes = 3
	}
	return safeSize(int64(m.RowBytes), m.Bounds.Height64(), planes)
}

func safeSize(rowBytes, height, planes int64) int {
	if rowBytes <= 0 || height <= 0 {
		return 0
	}
	if height > math.MaxInt32/rowBytes {
		return 0
	}
	size := rowBytes * height
	if size > math.MaxInt32/planes {
		return 0
	}
	return int(size * planes)
}

// Slice3DPlane returns one of the three planes of a ThreeD mask.
func (m *Mask) Slice3DPlane(i int) []byte {
	size := m.ComputeImageSize()
	if m.Format != ThreeD || i < 0 || i > 2 || len(m.Image) < size*3 {
		return nil
	}
	return m.Image[i*size : (i+1)*size]
}

// AsA8 returns the ThreeD mask viewed as its alpha plane alone.
func (m Mask) AsA8() Mask {
	if m.Format == ThreeD {
		m.Image = m.Slice3DPlane(0)
		m.Format = A8
	}
	return m
}

// Offset returns a copy of m sharing the image with bounds translated.
func (m Mask) Offset(dx, dy int) Mask {
	m.Bounds = m.Bounds.Offset(dx, dy)
	return m
}

func (m *Mask) offset(x, y int) int {
	checkAddr(m, x, y)
	return (y-m.Bounds.Top)*m.RowBytes + (x - m.Bounds.Left)
}

// Addr1 returns the byte holding pixel (x, y) of a BW mask and the bit
// selecting it.
func (m *Mask) Addr1(x, y int) (*byte, byte) {
	checkFormat(m, BW)
	checkAddr(m, x, y)
	i := (y-m.Bounds.Top)*m.RowBytes + (x-m.Bounds.Left)>>3
	return &m.Image[i], 0x80 >> uint((x-m.Bounds.Left)&7)
}

// Addr8 returns the byte of pixel (x, y) of an A8, SDF or ThreeD mask.
func (m *Mask) Addr8(x, y int) *byte {
	checkFormat(m, A8, SDF, ThreeD)
	return &m.Image[m.offset(x, y)]
}

// Get16 returns pixel (x, y) of an LCD16 mask.
func (m *Mask) Get16(x, y int) uint16 {
	checkFormat(m, LCD16)
	checkAddr(m, x, y)
	i := (y-m.Bounds.Top)*m.RowBytes + (x-m.Bounds.Left)*2
	return uint16(m.Image[i]) | uint16(m.Image[i+1])<<8
}

// Set16 stores pixel (x, y) of an LCD16 mask.
func (m *Mask) Set16(x, y int, v uint16) {
	checkFormat(m, LCD16)
	checkAddr(m, x, y)
	i := (y-m.Bounds.Top)*m.RowBytes + (x-m.Bounds.Left)*2
	m.Image[i] = byte(v)
	m.Image[i+1] = byte(v >> 8)
}

// Addr32 returns the four bytes of pixel (x, y) of an ARGB32 mask.
func (m *Mask) Addr32(x, y int) []byte {
	checkFormat(m, ARGB32)
	checkAddr(m, x, y)
	i := (y-m.Bounds.Top)*m.RowBytes + (x-m.Bounds.Left)*4
	return m.Image[i : i+4 : i+4]
}

// Row returns the bytes of row y, or nil outside the bounds.
func (m *Mask) Row(y int) []byte {
	if y < m.Bounds.Top || y >= m.Bounds.Bottom || m.Image == nil {
		return nil
	}
	i := (y - m.Bounds.Top) * m.RowBytes
	return m.Image[i : i+m.RowBytes]
}

// AlphaAt returns the coverage of pixel (x, y) as 0-255, or 0 outside the
// bounds or when no image is attached.
func (m *Mask) AlphaAt(x, y int) uint8 {
	if m.Image == nil || !m.Bounds.ContainsXY(x, y) {
		return 0
	}
	switch m.Format {
	case BW:
		b, bit := m.Addr1(x, y)
		if *b&bit != 0 {
			return 0xFF
		}
		return 0
	case LCD16:
		c := m.Get16(x, y)
		r := upscale5(uint8(c >> 11))
		g := upscale6(uint8(c>>5) & 0x3F)
		b := upscale5(uint8(c) & 0x1F)
		return uint8((uint16(r) + uint16(g) + uint16(b)) / 3)
	case ARGB32:
		return m.Addr32(x, y)[3]
	default:
		return *m.Addr8(x, y)
	}
}

func upscale5(v uint8) uint8 { return v<<3 | v>>2 }
func upscale6(v uint8) uint8 { return v<<2 | v>>4 }

// PackLCD16 packs 8-bit coverage triples into RGB565.
func PackLCD16(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
