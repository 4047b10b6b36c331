package tessellate

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pathcov/geom"
)

// OpKind names the kind of a recorded op.
type OpKind uint8

const (
	KindPathTessellate OpKind = iota
	KindPathStencilCover
	KindPathInnerTriangulate
	KindStrokeTessellate
	KindFillRect
)

var opKindNames = [...]string{"PathTessellateOp", "PathStencilCoverOp", "PathInnerTriangulateOp", "StrokeTessellateOp", "FillRectOp"}

// String returns the op type name.
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "OpKind(?)"
}

// Op is a recorded draw. Execute writes its geometry and draws into the
// flush state.
type Op interface {
	Kind() OpKind
	// Bounds is the device-space area the op touches.
	Bounds() geom.Rect
	Execute(fs *FlushState)
}

// combiner is implemented by ops that can absorb the op recorded after them.
type combiner interface {
	combineIfPossible(next Op, cfg Config) bool
}

// DrawType is the kind of GPU draw call.
type DrawType uint8

const (
	// DrawTriangles draws VertexCount vertices from Vertices.
	DrawTriangles DrawType = iota
	// DrawInstanced draws InstanceCount instances of VertexCount vertices.
	DrawInstanced
	// DrawIndexedInstanced is DrawInstanced through the curve index buffer.
	DrawIndexedInstanced
)

// Draw is one recorded draw call. Offsets are in bytes.
type Draw struct {
	Op       OpKind
	Pipeline *PipelineDesc
	Type     DrawType
	Matrix   geom.Matrix
	Color    Color
	// Stroke holds the radius and join type of non-dynamic stroke draws.
	Stroke [2]float32
	// Edges holds the edges per instance and join edges of stroke draws.
	Edges [2]float32

	VertexOffset   int
	VertexCount    int
	InstanceOffset int
	InstanceCount  int
	StencilRef     uint32
}

// FlushState receives the geometry and draw calls of every op in a
// recording. Buffers are little-endian float32 data ready for upload.
type FlushState struct {
	Caps      Caps
	Vertices  []byte
	Instances []byte
	// Indices is the middle-out curve index buffer, written once.
	Indices []byte
	Draws   []Draw

	pipelines map[PipelineKey]*PipelineDesc
}

// NewFlushState returns an empty flush state for a device with caps.
func NewFlushState(caps Caps) *FlushState {
	return &FlushState{Caps: caps, pipelines: make(map[PipelineKey]*PipelineDesc)}
}

// Pipeline returns the shared description for key.
func (fs *FlushState) Pipeline(key PipelineKey) *PipelineDesc {
	if d, ok := fs.pipelines[key]; ok {
		return d
	}
	d := NewPipelineDesc(key)
	fs.pipelines[key] = d
	return d
}

// Pipelines returns every pipeline description used so far.
func (fs *FlushState) Pipelines() []*PipelineDesc {
	out := make([]*PipelineDesc, 0, len(fs.pipelines))
	for _, d := range fs.pipelines {
		out = append(out, d)
	}
	return out
}

// appendVertices writes float data to the vertex buffer and returns its
// byte offset and vertex count for 2D positions.
func (fs *FlushState) appendVertices(xy []float32) (offset, count int) {
	offset = len(fs.Vertices)
	fs.Vertices = appendFloats(fs.Vertices, xy)
	return offset, len(xy) / 2
}

// appendInstances writes instance data and returns its byte offset.
func (fs *FlushState) appendInstances(data []float32) int {
	offset := len(fs.Instances)
	fs.Instances = appendFloats(fs.Instances, data)
	return offset
}

// curveIndices makes sure the curve index buffer exists.
func (fs *FlushState) curveIndices() {
	if fs.Indices != nil {
		return
	}
	for _, i := range MiddleOutCurveIndices(MaxFixedResolveLevel) {
		fs.Indices = binary.LittleEndian.AppendUint16(fs.Indices, i)
	}
}

func (fs *FlushState) record(d Draw) {
	fs.Draws = append(fs.Draws, d)
}

// Reset clears the recorded data and keeps the pipeline descriptions.
func (fs *FlushState) Reset() {
	fs.Vertices = fs.Vertices[:0]
	fs.Instances = fs.Instances[:0]
	fs.Draws = fs.Draws[:0]
}

func appendFloats(dst []byte, src []float32) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

// Recording collects ops in draw order. It owns the arena the ops come from.
type Recording struct {
	Caps   Caps
	Config Config

	arena *Arena
	ops   []Op
}

// NewRecording returns an empty recording.
func NewRecording(caps Caps, cfg Config) *Recording {
	return &Recording{Caps: caps, Config: cfg, arena: NewArena()}
}

// Arena returns the recording's allocator.
func (r *Recording) Arena() *Arena { return r.arena }

// Ops returns the recorded ops in order.
func (r *Recording) Ops() []Op { return r.ops }

// AddOp appends op, or merges it into the previous op when the two can be
// drawn as one.
func (r *Recording) AddOp(op Op) {
	if n := len(r.ops); n > 0 {
		if c, ok := r.ops[n-1].(combiner); ok && c.combineIfPossible(op, r.Config) {
			Logger().Debug("tessellate: combined ops", "kind", op.Kind())
			return
		}
	}
	r.ops = append(r.ops, op)
}

// Flush executes every op into fs in order and releases the arena.
func (r *Recording) Flush(fs *FlushState) {
	for _, op := range r.ops {
		op.Execute(fs)
	}
	clear(r.ops)
	r.ops = r.ops[:0]
	r.arena.Reset()
}
