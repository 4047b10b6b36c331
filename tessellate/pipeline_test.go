package tessellate

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func TestStencilSettingsDepthStencil(t *testing.T) {
	if ds := StencilNone.DepthStencil(); ds != nil {
		t.Fatalf("StencilNone.DepthStencil() = %+v, want nil", ds)
	}

	tests := []struct {
		s           StencilSettings
		front, back hal.StencilFaceState
		writesColor bool
	}{
		{
			s:     StencilWindingNonZero,
			front: hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationIncrementWrap},
			back:  hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationDecrementWrap},
		},
		{
			s:     StencilWindingEvenOdd,
			front: hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationInvert},
			back:  hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationInvert},
		},
		{
			s:           StencilCover,
			front:       hal.StencilFaceState{Compare: gputypes.CompareFunctionNotEqual, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationZero},
			back:        hal.StencilFaceState{Compare: gputypes.CompareFunctionNotEqual, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationZero},
			writesColor: true,
		},
		{
			s:           StencilCoverInverse,
			front:       hal.StencilFaceState{Compare: gputypes.CompareFunctionEqual, FailOp: hal.StencilOperationZero, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationZero},
			back:        hal.StencilFaceState{Compare: gputypes.CompareFunctionEqual, FailOp: hal.StencilOperationZero, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationZero},
			writesColor: true,
		},
		{
			s:     StencilMark,
			front: hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationReplace},
			back:  hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways, FailOp: hal.StencilOperationKeep, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationReplace},
		},
		{
			s:           StencilFillOrIncrDecr,
			front:       hal.StencilFaceState{Compare: gputypes.CompareFunctionEqual, FailOp: hal.StencilOperationIncrementWrap, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationKeep},
			back:        hal.StencilFaceState{Compare: gputypes.CompareFunctionEqual, FailOp: hal.StencilOperationDecrementWrap, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationKeep},
			writesColor: true,
		},
		{
			s:           StencilFillOrInvert,
			front:       hal.StencilFaceState{Compare: gputypes.CompareFunctionEqual, FailOp: hal.StencilOperationInvert, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationKeep},
			back:        hal.StencilFaceState{Compare: gputypes.CompareFunctionEqual, FailOp: hal.StencilOperationInvert, DepthFailOp: hal.StencilOperationKeep, PassOp: hal.StencilOperationKeep},
			writesColor: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.s.String(), func(t *testing.T) {
			ds := tt.s.DepthStencil()
			if ds == nil {
				t.Fatal("DepthStencil() = nil")
			}
			if ds.Format != gputypes.TextureFormatDepth24PlusStencil8 {
				t.Errorf("Format = %v", ds.Format)
			}
			if ds.DepthWriteEnabled {
				t.Error("depth writes enabled")
			}
			if ds.StencilFront != tt.front {
				t.Errorf("StencilFront = %+v, want %+v", ds.StencilFront, tt.front)
			}
			if ds.StencilBack != tt.back {
				t.Errorf("StencilBack = %+v, want %+v", ds.StencilBack, tt.back)
			}
			if ds.StencilReadMask != 0xFF || ds.StencilWriteMask != 0xFF {
				t.Errorf("masks = %#x/%#x", ds.StencilReadMask, ds.StencilWriteMask)
			}
			if got := tt.s.writesColor(); got != tt.writesColor {
				t.Errorf("writesColor() = %v, want %v", got, tt.writesColor)
			}
		})
	}
}

func TestNewPipelineDescColorWrites(t *testing.T) {
	cover := NewPipelineDesc(PipelineKey{Program: ProgramTriangles, Stencil: StencilCover, ColorWrites: true})
	if cover.Target.Blend == nil || cover.Target.WriteMask != gputypes.ColorWriteMaskAll {
		t.Errorf("cover target = %+v, want blended color writes", cover.Target)
	}

	stencil := NewPipelineDesc(PipelineKey{Program: ProgramTriangles, Stencil: StencilWindingNonZero, ColorWrites: true})
	if stencil.Target.Blend != nil || stencil.Target.WriteMask != gputypes.ColorWriteMaskNone {
		t.Errorf("stencil pass target = %+v, want no color writes", stencil.Target)
	}

	off := NewPipelineDesc(PipelineKey{Program: ProgramTriangles})
	if off.Target.WriteMask != gputypes.ColorWriteMaskNone {
		t.Errorf("ColorWrites=false target = %+v", off.Target)
	}
	if off.DepthStencil != nil {
		t.Error("StencilNone pipeline has depth-stencil state")
	}
}

func TestNewPipelineDescMultisample(t *testing.T) {
	if got := NewPipelineDesc(PipelineKey{MSAA: true}).Multisample.Count; got != sampleCount {
		t.Errorf("MSAA count = %d, want %d", got, sampleCount)
	}
	if got := NewPipelineDesc(PipelineKey{}).Multisample.Count; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestVertexLayout(t *testing.T) {
	tests := []struct {
		name   string
		key    PipelineKey
		stride uint64
		step   gputypes.VertexStepMode
		attrs  int
	}{
		{"triangles", PipelineKey{Program: ProgramTriangles}, 8, gputypes.VertexStepModeVertex, 1},
		{"patches", PipelineKey{Program: ProgramCurvePatches}, 32, gputypes.VertexStepModeInstance, 2},
		{"hulls", PipelineKey{Program: ProgramCurveHulls}, 32, gputypes.VertexStepModeInstance, 2},
		{"stroke", PipelineKey{Program: ProgramStrokeFixedCount}, 40, gputypes.VertexStepModeInstance, 3},
		{"stroke+stroke", PipelineKey{Program: ProgramStrokeFixedCount, DynamicStroke: true}, 48, gputypes.VertexStepModeInstance, 4},
		{"stroke+color", PipelineKey{Program: ProgramStrokeFixedCount, DynamicColor: true}, 56, gputypes.VertexStepModeInstance, 4},
		{"stroke+both", PipelineKey{Program: ProgramStrokeFixedCount, DynamicStroke: true, DynamicColor: true}, 64, gputypes.VertexStepModeInstance, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffers := NewPipelineDesc(tt.key).Buffers
			if len(buffers) != 1 {
				t.Fatalf("%d buffers, want 1", len(buffers))
			}
			b := buffers[0]
			if b.ArrayStride != tt.stride || b.StepMode != tt.step || len(b.Attributes) != tt.attrs {
				t.Errorf("layout = stride %d step %v attrs %d, want %d %v %d",
					b.ArrayStride, b.StepMode, len(b.Attributes), tt.stride, tt.step, tt.attrs)
			}
		})
	}
}

func TestStrokePipelineTopology(t *testing.T) {
	d := NewPipelineDesc(PipelineKey{Program: ProgramStrokeFixedCount})
	if d.Primitive.Topology != gputypes.PrimitiveTopologyTriangleStrip {
		t.Errorf("Topology = %v, want triangle strip", d.Primitive.Topology)
	}
	d = NewPipelineDesc(PipelineKey{Program: ProgramCurvePatches})
	if d.Primitive.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("Topology = %v, want triangle list", d.Primitive.Topology)
	}
}

func TestPipelineKeyVariant(t *testing.T) {
	k := PipelineKey{Program: ProgramTriangles, DynamicStroke: true, DynamicColor: true}
	if got := k.Variant(); got != (Variant{Program: ProgramTriangles}) {
		t.Errorf("Variant() = %+v, want flags dropped", got)
	}
	k.Program = ProgramStrokeFixedCount
	want := Variant{Program: ProgramStrokeFixedCount, DynamicStroke: true, DynamicColor: true}
	if got := k.Variant(); got != want {
		t.Errorf("Variant() = %+v, want %+v", got, want)
	}
}

func TestRenderPipelineDescriptor(t *testing.T) {
	d := NewPipelineDesc(PipelineKey{Program: ProgramTriangles, Stencil: StencilCover, ColorWrites: true, MSAA: true})
	rp := d.RenderPipelineDescriptor(nil, nil)
	if rp.Vertex.EntryPoint != "vs_main" || rp.Fragment.EntryPoint != "fs_main" {
		t.Errorf("entry points = %q/%q", rp.Vertex.EntryPoint, rp.Fragment.EntryPoint)
	}
	if rp.Label != "triangles_Cover" {
		t.Errorf("Label = %q", rp.Label)
	}
	if rp.DepthStencil != d.DepthStencil || rp.Multisample.Count != sampleCount {
		t.Error("descriptor does not carry the pipeline state")
	}
	if len(rp.Fragment.Targets) != 1 || rp.Fragment.Targets[0].Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Targets = %+v", rp.Fragment.Targets)
	}
}
