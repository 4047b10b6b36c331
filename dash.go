package pathcov

import (
	"math"

	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/internal/flatten"
	"github.com/gogpu/pathcov/internal/wangs"
)

// maxDashCount bounds the number of dots AsPoints will produce for one line.
const maxDashCount = 1000000

// Dash is a PathEffect that splits contours into dashes.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths.
	// If the array has an odd number of elements, it is logically duplicated
	// to create an even-length pattern (e.g., [5] becomes [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern.
	Offset float64
}

var _ PointsPathEffect = (*Dash)(nil)

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are taken as absolute values.
//
// Examples:
//
//	NewDash(5, 3)        // 5 units dash, 3 units gap
//	NewDash(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//	NewDash(5)           // equivalent to [5, 5]
//
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float64) *Dash {
	normalized := make([]float64, len(lengths))
	positive := false
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
		if normalized[i] > 0 {
			positive = true
		}
	}
	if !positive {
		return nil
	}
	return &Dash{Array: normalized}
}

// WithOffset returns a new Dash with the given offset.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed returns true if this represents a dashed line (not solid).
func (d *Dash) IsDashed() bool {
	return d.PatternLength() > 0
}

// NormalizedOffset returns the offset normalized to be within one pattern cycle.
func (d *Dash) NormalizedOffset() float64 {
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}
	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

// effectiveArray returns the array with odd-length arrays duplicated.
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array)%2 == 0 {
		return d.Array
	}
	out := make([]float64, len(d.Array)*2)
	copy(out, d.Array)
	copy(out[len(d.Array):], d.Array)
	return out
}

// FilterPath appends the dashes of src to dst as open polylines. Curves are
// flattened at rec's resolution. Dashes whose stroked bounds miss cull are
// skipped.
func (d *Dash) FilterPath(dst, src *geom.Path, rec *StrokeRec, cull *geom.Rect, _ geom.Matrix) bool {
	if !d.IsDashed() {
		return false
	}
	res := rec.ResScale
	if !(res > 0) {
		res = 1
	}
	w := &dashWalker{
		pattern: d.effectiveArray(),
		phase:   d.NormalizedOffset(),
		dst:     dst,
		cull:    cull,
		outset:  rec.InflationRadius(),
	}
	for _, c := range flatten.Path(src, geom.Identity(), wangs.Precision*res) {
		w.contour(c)
	}
	return true
}

type dashWalker struct {
	pattern []float64
	phase   float64
	dst     *geom.Path
	cull    *geom.Rect
	outset  float64

	idx       int
	remaining float64
	on        bool
	cur       []geom.Point
	dashes    [][]geom.Point
}

func (w *dashWalker) reset() {
	w.idx = 0
	dist := w.phase
	for dist > 0 && dist >= w.pattern[w.idx] {
		dist -= w.pattern[w.idx]
		w.idx = (w.idx + 1) % len(w.pattern)
	}
	w.remaining = w.pattern[w.idx] - dist
	w.on = w.idx%2 == 0
	w.cur = w.cur[:0]
	w.dashes = w.dashes[:0]
}

func (w *dashWalker) advance() {
	w.idx = (w.idx + 1) % len(w.pattern)
	w.remaining = w.pattern[w.idx]
	w.on = w.idx%2 == 0
}

func (w *dashWalker) endDash() {
	if len(w.cur) > 0 {
		w.dashes = append(w.dashes, w.cur)
		w.cur = nil
	}
}

func (w *dashWalker) contour(c flatten.Contour) {
	pts := c.Points
	if c.Closed && len(pts) > 1 {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	if len(pts) < 2 {
		return
	}
	w.reset()
	startsOn := w.on && w.remaining > 0
	if w.on {
		w.cur = append(w.cur, pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := b.Sub(a).Length()
		pos := 0.0
		for segLen-pos > w.remaining {
			pos += w.remaining
			p := a.Lerp(b, pos/segLen)
			if w.on {
				w.cur = append(w.cur, p)
				w.endDash()
			}
			w.advance()
			if w.on {
				w.cur = append(w.cur, p)
			}
		}
		w.remaining -= segLen - pos
		if w.on {
			w.cur = append(w.cur, b)
		}
	}
	endsOn := w.on && len(w.cur) > 1
	w.endDash()
	if c.Closed && startsOn && endsOn && len(w.dashes) > 1 {
		last := w.dashes[len(w.dashes)-1]
		w.dashes[0] = append(last, w.dashes[0][1:]...)
		w.dashes = w.dashes[:len(w.dashes)-1]
	}
	for _, dash := range w.dashes {
		w.emit(dash)
	}
}

func (w *dashWalker) emit(pts []geom.Point) {
	if w.cull != nil {
		b := geom.BoundsOf(pts).Outset(w.outset, w.outset)
		c := *w.cull
		if b.Right < c.Left || b.Left > c.Right || b.Bottom < c.Top || b.Top > c.Bottom {
			return
		}
	}
	w.dst.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		w.dst.LineTo(p.X, p.Y)
	}
}

// AsPoints describes the dashes of a single axis-aligned line as dots. It
// handles two integer intervals with either butt caps and equal intervals
// (square dots) or round caps and a zero-length dash (circular dots).
func (d *Dash) AsPoints(results *PointData, src *geom.Path, rec *StrokeRec, m geom.Matrix, cull *geom.Rect) bool {
	pattern := d.effectiveArray()
	if len(pattern) != 2 || rec.Style() != StrokeRecStroke {
		return false
	}
	on, off := pattern[0], pattern[1]
	if on != math.Trunc(on) || off != math.Trunc(off) || on+off <= 0 {
		return false
	}
	circles := rec.Cap == CapRound && on == 0
	if !circles && (rec.Cap != CapButt || on != off) {
		return false
	}
	line, ok := src.IsLine()
	if !ok || !m.RectStaysRect() {
		return false
	}
	delta := line[1].Sub(line[0])
	if delta.X != 0 && delta.Y != 0 {
		return false
	}
	length := delta.Length()
	period := on + off
	if length == 0 || length/period > maxDashCount {
		return false
	}
	u := delta.Mul(1 / length)
	half := rec.Width / 2
	results.Flags = 0
	switch {
	case circles:
		results.Flags = PointCircles
		results.Size = geom.Pt(half, half)
	case delta.Y == 0:
		results.Size = geom.Pt(on/2, half)
	default:
		results.Size = geom.Pt(half, on/2)
	}
	results.Points = results.Points[:0]
	results.First, results.Last = nil, nil

	partial := func(from, to float64) *geom.Path {
		p := geom.NewPath()
		a, b := line[0].Add(u.Mul(from)), line[0].Add(u.Mul(to))
		p.MoveTo(a.X, a.Y)
		p.LineTo(b.X, b.Y)
		return p
	}
	var area geom.Rect
	if cull != nil {
		area = cull.Outset(results.Size.X, results.Size.Y)
	}
	for start := -d.NormalizedOffset(); start <= length; start += period {
		end := start + on
		if circles {
			if start < 0 {
				continue
			}
		} else {
			if end <= 0 {
				continue
			}
			if start < 0 {
				results.First = partial(0, end)
				continue
			}
			if end > length {
				if start < length {
					results.Last = partial(start, length)
				}
				break
			}
		}
		c := line[0].Add(u.Mul(start + on/2))
		if cull != nil && !area.ContainsPoint(c) {
			continue
		}
		results.Points = append(results.Points, c)
	}
	return true
}
