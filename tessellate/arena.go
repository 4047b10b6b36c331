package tessellate

const arenaChunk = 64

// slab hands out pointers into fixed-size chunks. Pointers stay valid until
// reset.
type slab[T any] struct {
	chunks [][]T
	n      int
}

func (s *slab[T]) alloc() *T {
	c, i := s.n/arenaChunk, s.n%arenaChunk
	if c == len(s.chunks) {
		s.chunks = append(s.chunks, make([]T, arenaChunk))
	}
	s.n++
	return &s.chunks[c][i]
}

// reset zeroes the handed-out slots and keeps the chunks for reuse.
func (s *slab[T]) reset() {
	for c := 0; c*arenaChunk < s.n; c++ {
		clear(s.chunks[c])
	}
	s.n = 0
}

// Arena is the bulk allocator of one Recording: ops, stroke list nodes and
// tessellator scratch. Nothing is freed individually; Reset releases
// everything at once and invalidates every pointer handed out.
type Arena struct {
	strokeOps    slab[StrokeTessellateOp]
	tessOps      slab[PathTessellateOp]
	coverOps     slab[PathStencilCoverOp]
	innerOps     slab[PathInnerTriangulateOp]
	rectOps      slab[FillRectOp]
	strokeNodes  slab[PathStrokeList]
	floats       []float32
	reservations int
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

func (a *Arena) newStrokeOp() *StrokeTessellateOp { return a.strokeOps.alloc() }

func (a *Arena) newTessellateOp() *PathTessellateOp { return a.tessOps.alloc() }

func (a *Arena) newStencilCoverOp() *PathStencilCoverOp { return a.coverOps.alloc() }

func (a *Arena) newInnerTriangulateOp() *PathInnerTriangulateOp { return a.innerOps.alloc() }

func (a *Arena) newFillRectOp() *FillRectOp { return a.rectOps.alloc() }

func (a *Arena) newStrokeNode() *PathStrokeList { return a.strokeNodes.alloc() }

// Floats returns n zeroed float32s of scratch space.
func (a *Arena) Floats(n int) []float32 {
	a.reservations++
	start := len(a.floats)
	if cap(a.floats)-start < n {
		// Earlier slices keep the old backing array.
		a.floats = make([]float32, 0, max(2*cap(a.floats), n, 1024))
		start = 0
	}
	a.floats = a.floats[:start+n]
	buf := a.floats[start : start+n : start+n]
	clear(buf)
	return buf
}

// Allocated returns the number of objects and scratch reservations handed
// out since the last Reset.
func (a *Arena) Allocated() int {
	return a.strokeOps.n + a.tessOps.n + a.coverOps.n + a.innerOps.n +
		a.rectOps.n + a.strokeNodes.n + a.reservations
}

// Reset releases every allocation.
func (a *Arena) Reset() {
	a.strokeOps.reset()
	a.tessOps.reset()
	a.coverOps.reset()
	a.innerOps.reset()
	a.rectOps.reset()
	a.strokeNodes.reset()
	a.floats = a.floats[:0]
	a.reservations = 0
}
