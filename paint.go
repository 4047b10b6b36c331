package pathcov

import "image/color"

// Style selects how a paint covers a shape.
type Style uint8

const (
	// StyleFill fills the interior of the shape.
	StyleFill Style = iota
	// StyleStroke outlines the shape with the stroke settings.
	StyleStroke
	// StyleStrokeAndFill fills the shape and its stroke outline.
	StyleStrokeAndFill
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleStroke:
		return "Stroke"
	case StyleStrokeAndFill:
		return "StrokeAndFill"
	default:
		return "Style(?)"
	}
}

// Cap specifies the shape of open stroke endpoints.
type Cap uint8

const (
	// CapButt ends the stroke flush with the endpoint.
	CapButt Cap = iota
	// CapRound adds a half circle at each endpoint.
	CapRound
	// CapSquare extends the stroke by half its width.
	CapSquare
)

// Join specifies the shape drawn where two stroke segments meet.
type Join uint8

const (
	// JoinMiter extends the outer edges to a point, up to the miter limit.
	JoinMiter Join = iota
	// JoinRound joins with a circular arc.
	JoinRound
	// JoinBevel cuts the corner off.
	JoinBevel
)

// DefaultMiterLimit is the miter limit of a new Paint.
const DefaultMiterLimit = 4.0

// Shader produces the color of a pixel. The rasterizer never inspects it; it
// is evaluated by the blitter for each covered pixel.
type Shader interface {
	ColorAt(x, y float64) color.NRGBA
}

// Paint holds the styling of one draw call.
type Paint struct {
	// Color is used when Shader is nil. Its alpha modulates shader output.
	Color  color.NRGBA
	Shader Shader

	Style       Style
	StrokeWidth float64
	MiterLimit  float64
	Cap         Cap
	Join        Join
	AntiAlias   bool

	// PathEffect, when set, rewrites the geometry before stroking.
	PathEffect PathEffect
	// MaskFilter, when set, post-processes the coverage mask.
	MaskFilter MaskFilter
}

// NewPaint creates a new Paint with default values: opaque black, fill,
// hairline width, butt caps, miter joins, antialiased.
func NewPaint() *Paint {
	return &Paint{
		Color:      color.NRGBA{A: 0xff},
		Style:      StyleFill,
		MiterLimit: DefaultMiterLimit,
		Cap:        CapButt,
		Join:       JoinMiter,
		AntiAlias:  true,
	}
}

// Clone returns a shallow copy of the paint. Effects and shaders are shared.
func (p *Paint) Clone() *Paint {
	c := *p
	return &c
}

// Alpha returns the paint's alpha.
func (p *Paint) Alpha() uint8 { return p.Color.A }

// SetAlpha replaces the paint's alpha.
func (p *Paint) SetAlpha(a uint8) { p.Color.A = a }

// IsOpaque reports whether every pixel the paint touches is fully replaced.
func (p *Paint) IsOpaque() bool {
	return p.Shader == nil && p.Color.A == 0xff
}

// NothingToDraw reports whether drawing with the paint has no visible effect.
func (p *Paint) NothingToDraw() bool {
	return p.Shader == nil && p.Color.A == 0
}
