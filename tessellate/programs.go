package tessellate

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// ProgramID names a tessellation shader program.
type ProgramID uint8

const (
	// ProgramTriangles draws a triangle list of local-space points.
	ProgramTriangles ProgramID = iota
	// ProgramCurvePatches draws middle-out triangulated curve patches,
	// one instance per patch.
	ProgramCurvePatches
	// ProgramCurveHulls draws the control polygon of each curve patch.
	ProgramCurveHulls
	// ProgramStrokeFixedCount draws stroke instances as triangle strips
	// with the same edge count per instance.
	ProgramStrokeFixedCount
	// ProgramStrokeHardware feeds stroke patches to hardware tessellation.
	// WGSL has no tessellation stage, so backends supply their own shader.
	ProgramStrokeHardware
)

var programNames = [...]string{"triangles", "curve_patches", "curve_hulls", "stroke_fixed_count", "stroke_hardware"}

// String returns the program name.
func (p ProgramID) String() string {
	if int(p) < len(programNames) {
		return programNames[p]
	}
	return "program(?)"
}

//go:embed shaders/triangles.wgsl
var trianglesShaderSource string

//go:embed shaders/curve_patches.wgsl
var curvePatchesShaderSource string

//go:embed shaders/curve_hulls.wgsl
var curveHullsShaderSource string

//go:embed shaders/stroke_fixed_count.wgsl
var strokeFixedCountShaderSource string

// ErrNoWGSL is returned for programs without a WGSL implementation.
var ErrNoWGSL = errors.New("tessellate: program has no WGSL source")

// Variant is a program specialized for its instance attributes.
type Variant struct {
	Program       ProgramID
	DynamicStroke bool
	DynamicColor  bool
}

// String returns the variant name.
func (v Variant) String() string {
	s := v.Program.String()
	if v.DynamicStroke {
		s += "+stroke"
	}
	if v.DynamicColor {
		s += "+color"
	}
	return s
}

// WGSL returns the WGSL source of v.
func WGSL(v Variant) (string, error) {
	switch v.Program {
	case ProgramTriangles:
		return trianglesShaderSource, nil
	case ProgramCurvePatches:
		return curvePatchesShaderSource, nil
	case ProgramCurveHulls:
		return curveHullsShaderSource, nil
	case ProgramStrokeFixedCount:
		src := strokeFixedCountShaderSource
		if v.DynamicStroke {
			src = strings.ReplaceAll(src, "//DYNAMIC_STROKE ", "")
		}
		if v.DynamicColor {
			src = strings.ReplaceAll(src, "//DYNAMIC_COLOR ", "")
		}
		return src, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNoWGSL, v)
	}
}

// CompileFunc compiles WGSL source to SPIR-V bytes.
type CompileFunc func(wgsl string) ([]byte, error)

// Programs compiles and caches the SPIR-V of each program. It is safe for
// concurrent use.
type Programs struct {
	compile CompileFunc

	mu    sync.Mutex
	spirv map[Variant][]uint32
}

// NewPrograms returns a program cache that compiles with compile, or with
// naga when compile is nil.
func NewPrograms(compile CompileFunc) *Programs {
	if compile == nil {
		compile = func(src string) ([]byte, error) { return naga.Compile(src) }
	}
	return &Programs{compile: compile, spirv: make(map[Variant][]uint32)}
}

// SPIRV returns the SPIR-V words of p, compiling it on first use.
func (ps *Programs) SPIRV(p Variant) ([]uint32, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if code, ok := ps.spirv[p]; ok {
		return code, nil
	}
	src, err := WGSL(p)
	if err != nil {
		return nil, err
	}
	spirvBytes, err := ps.compile(src)
	if err != nil {
		return nil, fmt.Errorf("tessellate: compile %s: %w", p, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("tessellate: compile %s: SPIR-V size %d is not a multiple of 4", p, len(spirvBytes))
	}
	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	ps.spirv[p] = code
	Logger().Debug("tessellate: compiled program", "program", p, "words", len(code))
	return code, nil
}

// ShaderModule compiles p and creates a shader module on device.
func (ps *Programs) ShaderModule(device hal.Device, p Variant) (hal.ShaderModule, error) {
	code, err := ps.SPIRV(p)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.String(),
		Source: hal.ShaderSource{SPIRV: code},
	})
}
