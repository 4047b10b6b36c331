package tessellate

// Config holds the tuning constants of the op selection and stroke batching
// heuristics.
type Config struct {
	// CPUWeight scales the estimated cost of triangulating a path on the
	// CPU, verbs*log2(verbs), into pixel units.
	CPUWeight float64

	// MinNumPixelsToTriangulate is the fixed pixel cost added to every CPU
	// triangulation estimate.
	MinNumPixelsToTriangulate float64

	// MaxVerbsToEnableDynamicState is the combined verb count below which
	// two stroke ops may switch to per-instance stroke or color state in
	// order to merge.
	MaxVerbsToEnableDynamicState int

	// SinEpsilon is the sine of the angle below which two tangents count
	// as parallel.
	SinEpsilon float64
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		CPUWeight:                    512,
		MinNumPixelsToTriangulate:    256 * 256,
		MaxVerbsToEnableDynamicState: 50,
		SinEpsilon:                   1e-2,
	}
}

// Caps describes what the target GPU supports.
type Caps struct {
	// TessellationSupport reports hardware tessellation shaders.
	TessellationSupport bool
	// InfinitySupport reports that shaders can read infinite floats, which
	// lets conic patches be tagged with an infinite last coordinate.
	InfinitySupport bool
	// MinStrokeVerbsForHWTessellation is the verb count a stroke batch must
	// exceed before hardware tessellation is worth using.
	MinStrokeVerbsForHWTessellation int
}

// DefaultCaps returns caps for a WebGPU device: no tessellation shaders,
// IEEE infinities available.
func DefaultCaps() Caps {
	return Caps{
		InfinitySupport:                 true,
		MinStrokeVerbsForHWTessellation: 50,
	}
}

// AAType is the antialiasing mode of a draw.
type AAType uint8

const (
	AANone AAType = iota
	AACoverage
	AAMSAA
)

// String returns the mode name.
func (a AAType) String() string {
	switch a {
	case AANone:
		return "None"
	case AACoverage:
		return "Coverage"
	case AAMSAA:
		return "MSAA"
	default:
		return "AAType(?)"
	}
}

// ProcessorSet summarizes the color pipeline a draw feeds. It is comparable
// so ops can test for identical processing.
type ProcessorSet struct {
	// BlendReadsDst is set when blending depends on the destination
	// color, for example partial coverage or a non src-over blend.
	BlendReadsDst bool
	// UsesVaryingCoords is set when a processor samples with local
	// coordinates interpolated from the geometry.
	UsesVaryingCoords bool
}

// UnaffectedByDstValue reports whether drawing a pixel twice gives the same
// result as drawing it once.
func (p ProcessorSet) UnaffectedByDstValue() bool { return !p.BlendReadsDst }

// Join is a stroke join.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Cap is a stroke end cap.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// StrokeStyle is the geometric part of a stroke. A zero Width is a
// hairline.
type StrokeStyle struct {
	Width      float64
	MiterLimit float64
	Join       Join
	Cap        Cap
}

// IsHairline reports whether s is a zero-width stroke.
func (s StrokeStyle) IsHairline() bool { return s.Width == 0 }

// Color is a premultiplied RGBA color.
type Color [4]float32
