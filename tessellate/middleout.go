package tessellate

// MaxFixedResolveLevel is the deepest subdivision of a curve patch: 2^5
// line segments.
const MaxFixedResolveLevel = 5

// MiddleOutPolygon appends the triangles of a closed polygon with n vertices
// to dst as index triples, n-2 triangles in all. Triangles connect
// neighbors first, then every second surviving vertex, and so on, which
// keeps them far from thin slivers for evenly spaced vertices.
func MiddleOutPolygon(dst []int, n int) []int {
	if n < 3 {
		return dst
	}
	ring := make([]int, n)
	for i := range ring {
		ring[i] = i
	}
	for len(ring) >= 3 {
		next := ring[:0:0]
		last := len(ring) - 1
		i := 0
		for ; i+2 <= last; i += 2 {
			dst = append(dst, ring[i], ring[i+1], ring[i+2])
			next = append(next, ring[i])
		}
		// i now indexes the last kept vertex of the final triangle, or the
		// trailing vertex when the ring length is even.
		next = append(next, ring[i:]...)
		if len(next) == len(ring) {
			break
		}
		ring = next
	}
	return dst
}

// MiddleOutCurveIndices returns the index buffer shared by every curve patch
// with resolve level up to maxLevel. Vertex id v stands for the curve
// parameter v / 2^maxLevel. A patch with resolve level r uses the first
// CurveIndexCount(r) indices: each level halves the previous level's
// segments, so a prefix of the buffer is a complete coarser triangulation.
func MiddleOutCurveIndices(maxLevel int) []uint16 {
	end := 1 << maxLevel
	idx := make([]uint16, 0, CurveIndexCount(maxLevel))
	for level := 1; level <= maxLevel; level++ {
		step := end >> (level - 1)
		for a := 0; a < end; a += step {
			idx = append(idx, uint16(a), uint16(a+step/2), uint16(a+step))
		}
	}
	return idx
}

// CurveIndexCount returns the number of indices a patch with the given
// resolve level draws: three per triangle, 2^level-1 triangles.
func CurveIndexCount(level int) int {
	if level <= 0 {
		return 0
	}
	return 3 * (1<<level - 1)
}
