package tessellate

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// StencilSettings selects the stencil behavior of a pipeline.
type StencilSettings uint8

const (
	// StencilNone disables the stencil test.
	StencilNone StencilSettings = iota
	// StencilWindingNonZero counts windings: front faces increment, back
	// faces decrement.
	StencilWindingNonZero
	// StencilWindingEvenOdd flips the parity on every face.
	StencilWindingEvenOdd
	// StencilCover passes where the stencil is nonzero and resets it.
	StencilCover
	// StencilCoverInverse passes where the stencil is zero and resets every
	// covered sample.
	StencilCoverInverse
	// StencilMark writes the reference value wherever geometry lands.
	StencilMark
	// StencilFillOrIncrDecr colors where the stencil is zero and elsewhere
	// adds the face's winding to it.
	StencilFillOrIncrDecr
	// StencilFillOrInvert colors where the stencil is zero and elsewhere
	// flips its parity.
	StencilFillOrInvert
)

var stencilNames = [...]string{"None", "WindingNonZero", "WindingEvenOdd", "Cover", "CoverInverse", "Mark", "FillOrIncrDecr", "FillOrInvert"}

// String returns the settings name.
func (s StencilSettings) String() string {
	if int(s) < len(stencilNames) {
		return stencilNames[s]
	}
	return "StencilSettings(?)"
}

// stencilFace returns the per-face state for s. front selects the front
// face for the winding modes.
func stencilFace(s StencilSettings, front bool) hal.StencilFaceState {
	f := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	switch s {
	case StencilWindingNonZero:
		f.PassOp = hal.StencilOperationDecrementWrap
		if front {
			f.PassOp = hal.StencilOperationIncrementWrap
		}
	case StencilWindingEvenOdd:
		f.PassOp = hal.StencilOperationInvert
	case StencilCover:
		f.Compare = gputypes.CompareFunctionNotEqual
		f.PassOp = hal.StencilOperationZero
	case StencilCoverInverse:
		f.Compare = gputypes.CompareFunctionEqual
		f.PassOp = hal.StencilOperationZero
		f.FailOp = hal.StencilOperationZero
	case StencilMark:
		f.PassOp = hal.StencilOperationReplace
	case StencilFillOrIncrDecr:
		f.Compare = gputypes.CompareFunctionEqual
		f.FailOp = hal.StencilOperationDecrementWrap
		if front {
			f.FailOp = hal.StencilOperationIncrementWrap
		}
	case StencilFillOrInvert:
		f.Compare = gputypes.CompareFunctionEqual
		f.FailOp = hal.StencilOperationInvert
	}
	return f
}

// DepthStencil returns the depth-stencil state for s, or nil for
// StencilNone. Depth is never tested or written.
func (s StencilSettings) DepthStencil() *hal.DepthStencilState {
	if s == StencilNone {
		return nil
	}
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      stencilFace(s, true),
		StencilBack:       stencilFace(s, false),
		StencilReadMask:   0xFF,
		StencilWriteMask:  0xFF,
	}
}

// writesColor reports whether a pass with s colors pixels.
func (s StencilSettings) writesColor() bool {
	switch s {
	case StencilWindingNonZero, StencilWindingEvenOdd, StencilMark:
		return false
	default:
		return true
	}
}

// sampleCount is the MSAA sample count of multisampled pipelines.
const sampleCount = 4

// PipelineKey identifies a pipeline configuration.
type PipelineKey struct {
	Program ProgramID
	Stencil StencilSettings
	MSAA    bool
	// ColorWrites is false for stencil-only passes.
	ColorWrites bool
	// DynamicStroke and DynamicColor add per-instance attributes to the
	// stroke programs.
	DynamicStroke bool
	DynamicColor  bool
}

// Variant returns the shader variant k draws with. Only the fixed-count
// stroke program has per-instance attribute variants.
func (k PipelineKey) Variant() Variant {
	v := Variant{Program: k.Program}
	if k.Program == ProgramStrokeFixedCount {
		v.DynamicStroke, v.DynamicColor = k.DynamicStroke, k.DynamicColor
	}
	return v
}

// PipelineDesc is the device-independent description of a render pipeline.
type PipelineDesc struct {
	Key          PipelineKey
	Label        string
	Primitive    gputypes.PrimitiveState
	Buffers      []gputypes.VertexBufferLayout
	Target       gputypes.ColorTargetState
	DepthStencil *hal.DepthStencilState
	Multisample  gputypes.MultisampleState
}

// NewPipelineDesc builds the description for key.
func NewPipelineDesc(key PipelineKey) *PipelineDesc {
	d := &PipelineDesc{
		Key:   key,
		Label: fmt.Sprintf("%s_%s", key.Variant(), key.Stencil),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Buffers:      vertexLayout(key),
		DepthStencil: key.Stencil.DepthStencil(),
		Multisample:  gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}
	if key.Program == ProgramStrokeFixedCount {
		d.Primitive.Topology = gputypes.PrimitiveTopologyTriangleStrip
	}
	if key.MSAA {
		d.Multisample.Count = sampleCount
	}
	d.Target = gputypes.ColorTargetState{
		Format:    gputypes.TextureFormatBGRA8Unorm,
		WriteMask: gputypes.ColorWriteMaskNone,
	}
	if key.ColorWrites && key.Stencil.writesColor() {
		premulBlend := gputypes.BlendStatePremultiplied()
		d.Target.Blend = &premulBlend
		d.Target.WriteMask = gputypes.ColorWriteMaskAll
	}
	return d
}

// vertexLayout returns the vertex buffers a program reads.
func vertexLayout(key PipelineKey) []gputypes.VertexBufferLayout {
	switch key.Program {
	case ProgramTriangles:
		return []gputypes.VertexBufferLayout{{
			ArrayStride: 8,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		}}
	case ProgramCurvePatches, ProgramCurveHulls:
		return []gputypes.VertexBufferLayout{{
			ArrayStride: patchFloats * 4,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
			},
		}}
	default:
		attrs := []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 32, ShaderLocation: 2},
		}
		off := uint64(40)
		if key.DynamicStroke {
			attrs = append(attrs, gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x2, Offset: off, ShaderLocation: 3})
			off += 8
		}
		if key.DynamicColor {
			attrs = append(attrs, gputypes.VertexAttribute{Format: gputypes.VertexFormatFloat32x4, Offset: off, ShaderLocation: 4})
			off += 16
		}
		return []gputypes.VertexBufferLayout{{
			ArrayStride: off,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes:  attrs,
		}}
	}
}

// RenderPipelineDescriptor returns the hal descriptor for d using the given
// shader module and layout.
func (d *PipelineDesc) RenderPipelineDescriptor(module hal.ShaderModule, layout hal.PipelineLayout) *hal.RenderPipelineDescriptor {
	return &hal.RenderPipelineDescriptor{
		Label:  d.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    d.Buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets:    []gputypes.ColorTargetState{d.Target},
		},
		DepthStencil: d.DepthStencil,
		Multisample:  d.Multisample,
		Primitive:    d.Primitive,
	}
}
