package mask

import "github.com/gogpu/pathcov/geom"

// Builder accumulates a mask image. The zero value is an empty A8 builder.
type Builder struct {
	m Mask
}

// NewBuilder returns a builder for a mask with the given bounds and format and
// no image.
func NewBuilder(bounds geom.IRect, f Format) *Builder {
	return &Builder{m: New(bounds, f)}
}

// Mask returns a pointer to the mask under construction.
func (b *Builder) Mask() *Mask { return &b.m }

// Bounds returns the current bounds.
func (b *Builder) Bounds() geom.IRect { return b.m.Bounds }

// SetBounds replaces the bounds and recomputes the row stride. Any attached
// image is released.
func (b *Builder) SetBounds(bounds geom.IRect, f Format) {
	FreeImage(&b.m.Image)
	b.m = New(bounds, f)
}

// Image returns the attached image.
func (b *Builder) Image() []byte { return b.m.Image }

// AllocImage attaches a zeroed image sized for the current bounds.
func (b *Builder) AllocImage() error {
	if b.m.IsEmpty() {
		return ErrEmpty
	}
	size := b.m.ComputeTotalImageSize()
	if size == 0 {
		return ErrTooLarge
	}
	b.m.Image = AllocImage(size)
	return nil
}

// SetImage attaches img, releasing any previous image.
func (b *Builder) SetImage(img []byte) {
	if b.m.Image != nil {
		FreeImage(&b.m.Image)
	}
	b.m.Image = img
}

// Finalize returns the finished mask and moves image ownership to it. The
// builder is left with the same bounds and no image.
func (b *Builder) Finalize() Mask {
	out := b.m
	b.m.Image = nil
	return out
}

// Release frees any image still owned by the builder.
func (b *Builder) Release() {
	FreeImage(&b.m.Image)
}
