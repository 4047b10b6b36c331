package geom

import "math"

// Rect is an axis-aligned float rectangle. A rect is empty unless
// Left < Right and Top < Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectLTRB returns the rect with the given edges.
func RectLTRB(l, t, r, b float64) Rect {
	return Rect{Left: l, Top: t, Right: r, Bottom: b}
}

// RectXYWH returns the rect at (x, y) with size (w, h).
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns Right-Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: r.Left*0.5 + r.Right*0.5, Y: r.Top*0.5 + r.Bottom*0.5}
}

// IsEmpty reports whether the rect encloses no area. NaN edges make a rect empty.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// IsFinite reports whether all four edges are finite.
func (r Rect) IsFinite() bool {
	return AllFinite(r.Left, r.Top, r.Right, r.Bottom)
}

// Sorted returns the rect with Left<=Right and Top<=Bottom.
func (r Rect) Sorted() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Outset grows the rect by dx horizontally and dy vertically on each side.
func (r Rect) Outset(dx, dy float64) Rect {
	return Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Inset shrinks the rect by dx and dy on each side.
func (r Rect) Inset(dx, dy float64) Rect {
	return r.Outset(-dx, -dy)
}

// Offset translates the rect.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Union returns the smallest rect containing both. Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Intersect returns the overlap of r and o and whether it is non-empty.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return !r.IsEmpty() && !o.IsEmpty() &&
		r.Left <= o.Left && r.Top <= o.Top && r.Right >= o.Right && r.Bottom >= o.Bottom
}

// ContainsPoint reports whether p is inside r (half-open on the right and bottom).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Round rounds each edge to the nearest integer, halves rounding up.
func (r Rect) Round() IRect {
	return IRect{
		Left:   roundToInt(r.Left),
		Top:    roundToInt(r.Top),
		Right:  roundToInt(r.Right),
		Bottom: roundToInt(r.Bottom),
	}
}

// RoundOut returns the smallest integer rect containing r.
func (r Rect) RoundOut() IRect {
	return IRect{
		Left:   int(math.Floor(r.Left)),
		Top:    int(math.Floor(r.Top)),
		Right:  int(math.Ceil(r.Right)),
		Bottom: int(math.Ceil(r.Bottom)),
	}
}

// RoundIn returns the largest integer rect contained in r.
func (r Rect) RoundIn() IRect {
	return IRect{
		Left:   int(math.Ceil(r.Left)),
		Top:    int(math.Ceil(r.Top)),
		Right:  int(math.Floor(r.Right)),
		Bottom: int(math.Floor(r.Bottom)),
	}
}

// BoundsOf returns the bounds of pts. The result is empty for fewer than one point.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	b := Rect{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		b.Left = math.Min(b.Left, p.X)
		b.Top = math.Min(b.Top, p.Y)
		b.Right = math.Max(b.Right, p.X)
		b.Bottom = math.Max(b.Bottom, p.Y)
	}
	return b
}

func roundToInt(v float64) int {
	return int(math.Floor(v + 0.5))
}

// IRect is an integer rectangle, half-open on the right and bottom.
type IRect struct {
	Left, Top, Right, Bottom int
}

// IRectLTRB returns the integer rect with the given edges.
func IRectLTRB(l, t, r, b int) IRect {
	return IRect{Left: l, Top: t, Right: r, Bottom: b}
}

// IRectWH returns the rect at the origin with size (w, h).
func IRectWH(w, h int) IRect {
	return IRect{Right: w, Bottom: h}
}

// Width returns Right-Left.
func (r IRect) Width() int { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r IRect) Height() int { return r.Bottom - r.Top }

// Width64 returns the width without int overflow on extreme edges.
func (r IRect) Width64() int64 { return int64(r.Right) - int64(r.Left) }

// Height64 returns the height without int overflow on extreme edges.
func (r IRect) Height64() int64 { return int64(r.Bottom) - int64(r.Top) }

// IsEmpty reports whether the rect encloses no pixels.
func (r IRect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Intersect returns the overlap of r and o and whether it is non-empty.
func (r IRect) Intersect(o IRect) (IRect, bool) {
	out := IRect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return IRect{}, false
	}
	return out, true
}

// Intersects reports whether r and o overlap.
func (r IRect) Intersects(o IRect) bool {
	_, ok := r.Intersect(o)
	return ok
}

// Contains reports whether o lies entirely inside r.
func (r IRect) Contains(o IRect) bool {
	return !r.IsEmpty() && !o.IsEmpty() &&
		r.Left <= o.Left && r.Top <= o.Top && r.Right >= o.Right && r.Bottom >= o.Bottom
}

// ContainsXY reports whether pixel (x, y) is inside r.
func (r IRect) ContainsXY(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Offset translates the rect.
func (r IRect) Offset(dx, dy int) IRect {
	return IRect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Outset grows the rect on each side.
func (r IRect) Outset(dx, dy int) IRect {
	return IRect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Union returns the smallest rect containing both. Empty operands are ignored.
func (r IRect) Union(o IRect) IRect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return IRect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// ToRect converts to a float rect.
func (r IRect) ToRect() Rect {
	return Rect{Left: float64(r.Left), Top: float64(r.Top), Right: float64(r.Right), Bottom: float64(r.Bottom)}
}
