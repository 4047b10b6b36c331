package geom

import "math"

// Matrix is a 3x3 transformation matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//	| G  H  I |
//
// Points map as x' = (A*x + B*y + C) / w, y' = (D*x + E*y + F) / w with
// w = G*x + H*y + I. The zero value is not the identity; use Identity.
type Matrix struct {
	A, B, C float64
	D, E, F float64
	G, H, I float64
}

// MatrixType is a bitmask describing which parts of a matrix are non-trivial.
type MatrixType uint8

// Matrix type bits.
const (
	TypeIdentity    MatrixType = 0
	TypeTranslate   MatrixType = 1 << 0
	TypeScale       MatrixType = 1 << 1
	TypeAffine      MatrixType = 1 << 2
	TypePerspective MatrixType = 1 << 3
)

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1, I: 1}
}

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y, I: 1}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy, I: 1}
}

// Rotate returns a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos, I: 1}
}

// Skew returns a skew matrix.
func Skew(kx, ky float64) Matrix {
	return Matrix{A: 1, B: kx, D: ky, E: 1, I: 1}
}

// Perspective returns the identity with the given perspective terms.
func Perspective(px, py float64) Matrix {
	return Matrix{A: 1, E: 1, G: px, H: py, I: 1}
}

// Type classifies the matrix.
func (m Matrix) Type() MatrixType {
	if m.G != 0 || m.H != 0 || m.I != 1 {
		return TypePerspective | TypeAffine | TypeScale | TypeTranslate
	}
	var t MatrixType
	if m.C != 0 || m.F != 0 {
		t |= TypeTranslate
	}
	if m.A != 1 || m.E != 1 {
		t |= TypeScale
	}
	if m.B != 0 || m.D != 0 {
		t |= TypeAffine
	}
	return t
}

// IsIdentity reports whether m is the identity.
func (m Matrix) IsIdentity() bool { return m.Type() == TypeIdentity }

// HasPerspective reports whether the bottom row differs from (0, 0, 1).
func (m Matrix) HasPerspective() bool { return m.Type()&TypePerspective != 0 }

// IsTranslate reports whether m is at most a translation.
func (m Matrix) IsTranslate() bool { return m.Type()&^TypeTranslate == 0 }

// IsScaleTranslate reports whether m only scales and translates.
func (m Matrix) IsScaleTranslate() bool {
	return m.Type()&(TypeAffine|TypePerspective) == 0
}

// RectStaysRect reports whether m maps axis-aligned rects to axis-aligned
// rects: no perspective, and either no skew with non-zero scale or a 90
// degree rotation with non-zero skew.
func (m Matrix) RectStaysRect() bool {
	if m.HasPerspective() {
		return false
	}
	if m.B == 0 && m.D == 0 {
		return m.A != 0 && m.E != 0
	}
	return m.A == 0 && m.E == 0 && m.B != 0 && m.D != 0
}

// IsFinite reports whether every entry is finite.
func (m Matrix) IsFinite() bool {
	return AllFinite(m.A, m.B, m.C, m.D, m.E, m.F, m.G, m.H, m.I)
}

// Multiply returns m * n, the transform that applies n first and then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D + m.C*n.G,
		B: m.A*n.B + m.B*n.E + m.C*n.H,
		C: m.A*n.C + m.B*n.F + m.C*n.I,
		D: m.D*n.A + m.E*n.D + m.F*n.G,
		E: m.D*n.B + m.E*n.E + m.F*n.H,
		F: m.D*n.C + m.E*n.F + m.F*n.I,
		G: m.G*n.A + m.H*n.D + m.I*n.G,
		H: m.G*n.B + m.H*n.E + m.I*n.H,
		I: m.G*n.C + m.H*n.F + m.I*n.I,
	}
}

// PreTranslate returns m * Translate(dx, dy).
func (m Matrix) PreTranslate(dx, dy float64) Matrix {
	return m.Multiply(Translate(dx, dy))
}

// PostTranslate returns Translate(dx, dy) * m.
func (m Matrix) PostTranslate(dx, dy float64) Matrix {
	return Translate(dx, dy).Multiply(m)
}

// Invert returns the inverse of m and false if m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	if !m.HasPerspective() {
		det := m.A*m.E - m.B*m.D
		if det == 0 || !isFinite(1/det) {
			return Matrix{}, false
		}
		inv := 1 / det
		return Matrix{
			A: m.E * inv,
			B: -m.B * inv,
			C: (m.B*m.F - m.C*m.E) * inv,
			D: -m.D * inv,
			E: m.A * inv,
			F: (m.C*m.D - m.A*m.F) * inv,
			I: 1,
		}, true
	}
	c00 := m.E*m.I - m.F*m.H
	c01 := m.F*m.G - m.D*m.I
	c02 := m.D*m.H - m.E*m.G
	det := m.A*c00 + m.B*c01 + m.C*c02
	if det == 0 || !isFinite(1/det) {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		A: c00 * inv,
		B: (m.C*m.H - m.B*m.I) * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: c01 * inv,
		E: (m.A*m.I - m.C*m.G) * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
		G: c02 * inv,
		H: (m.B*m.G - m.A*m.H) * inv,
		I: (m.A*m.E - m.B*m.D) * inv,
	}, true
}

// MapXY maps the point (x, y).
func (m Matrix) MapXY(x, y float64) Point {
	px := m.A*x + m.B*y + m.C
	py := m.D*x + m.E*y + m.F
	if m.HasPerspective() {
		w := m.G*x + m.H*y + m.I
		if w != 0 {
			w = 1 / w
		}
		return Point{X: px * w, Y: py * w}
	}
	return Point{X: px, Y: py}
}

// MapPoint maps p.
func (m Matrix) MapPoint(p Point) Point {
	return m.MapXY(p.X, p.Y)
}

// MapPoints maps src into dst, which must be at least as long. dst and src may alias.
func (m Matrix) MapPoints(dst, src []Point) {
	for i, p := range src {
		dst[i] = m.MapXY(p.X, p.Y)
	}
}

// MapHomogeneous maps (x, y, 1) and returns the un-divided result.
func (m Matrix) MapHomogeneous(x, y float64) (px, py, w float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F, m.G*x + m.H*y + m.I
}

// MapVector maps v ignoring translation. Perspective is ignored.
func (m Matrix) MapVector(v Point) Point {
	return Point{X: m.A*v.X + m.B*v.Y, Y: m.D*v.X + m.E*v.Y}
}

// MapRect returns the bounds of the four mapped corners of r.
func (m Matrix) MapRect(r Rect) Rect {
	if m.IsScaleTranslate() {
		return Rect{
			Left:   r.Left*m.A + m.C,
			Top:    r.Top*m.E + m.F,
			Right:  r.Right*m.A + m.C,
			Bottom: r.Bottom*m.E + m.F,
		}.Sorted()
	}
	pts := [4]Point{
		m.MapXY(r.Left, r.Top),
		m.MapXY(r.Right, r.Top),
		m.MapXY(r.Right, r.Bottom),
		m.MapXY(r.Left, r.Bottom),
	}
	return BoundsOf(pts[:])
}

// MapRadius returns the mean radius of a circle of radius r after mapping.
func (m Matrix) MapRadius(r float64) float64 {
	a := m.MapVector(Point{X: r})
	b := m.MapVector(Point{Y: r})
	return math.Sqrt(a.Length() * b.Length())
}

// MinMaxScales returns the smallest and largest factors by which m scales a
// unit vector. Both are -1 for matrices with perspective.
func (m Matrix) MinMaxScales() (minScale, maxScale float64) {
	if m.HasPerspective() {
		return -1, -1
	}
	if m.B == 0 && m.D == 0 {
		sx, sy := math.Abs(m.A), math.Abs(m.E)
		return math.Min(sx, sy), math.Max(sx, sy)
	}
	// Singular values of the upper 2x2 are the square roots of the
	// eigenvalues of its Gram matrix.
	a := m.A*m.A + m.D*m.D
	b := m.A*m.B + m.D*m.E
	c := m.B*m.B + m.E*m.E
	x := (a - c) * 0.5
	root := math.Sqrt(x*x + b*b)
	mid := (a + c) * 0.5
	lo := math.Max(mid-root, 0)
	return math.Sqrt(lo), math.Sqrt(mid + root)
}

// MinScale returns the smallest scale factor, or -1 with perspective.
func (m Matrix) MinScale() float64 {
	lo, _ := m.MinMaxScales()
	return lo
}

// MaxScale returns the largest scale factor, or -1 with perspective.
func (m Matrix) MaxScale() float64 {
	_, hi := m.MinMaxScales()
	return hi
}

// Upper2x2Equal reports whether m and n share the same scale and skew terms.
func (m Matrix) Upper2x2Equal(n Matrix) bool {
	return m.A == n.A && m.B == n.B && m.D == n.D && m.E == n.E
}
