package scan

import "golang.org/x/image/math/fixed"

// fdot16 is a 16.16 fixed-point value used for the minor-axis walk.
type fdot16 int32

const (
	fdot16Shift      = 16
	fdot16One fdot16 = 1 << fdot16Shift
	fdot16Half       = fdot16One / 2

	fdot6One  fixed.Int26_6 = 1 << 6
	fdot6Mask               = fdot6One - 1
)

func toFDot6(v float64) fixed.Int26_6 { return fixed.Int26_6(v * float64(fdot6One)) }

func fdot6ToFDot16(v fixed.Int26_6) fdot16 { return fdot16(v) << (fdot16Shift - 6) }

func (f fdot16) floor() int { return int(f >> fdot16Shift) }

// frac returns the fractional part of f as 0-255.
func (f fdot16) frac() uint8 { return uint8(f >> 8) }

// fastDiv returns a/b as 16.16.
func fastDiv(a, b fixed.Int26_6) fdot16 {
	if b == 0 {
		return 0
	}
	return fdot16((int64(a) << fdot16Shift) / int64(b))
}

// smallScale scales an alpha by a 26.6 fraction in [0, 1].
func smallScale(alpha uint8, f fixed.Int26_6) uint8 {
	return uint8((int32(alpha) * int32(f)) >> 6)
}

func abs6(v fixed.Int26_6) fixed.Int26_6 {
	if v < 0 {
		return -v
	}
	return v
}

// endScales returns the coverage of the first and last pixel along the major
// axis of [a, b]. A span within one pixel reports its length as the start.
func endScales(a, b fixed.Int26_6, n int) (start, stop fixed.Int26_6) {
	if n == 1 {
		return b - a, 0
	}
	return fdot6One - a&fdot6Mask, b & fdot6Mask
}

// antiHairline walks the major axis one pixel at a time and splits each
// sample between the two pixels straddling the minor-axis position. Long
// lines are halved so slopes keep their precision.
func antiHairline(b Blitter, x0, y0, x1, y1 fixed.Int26_6) {
	const maxSpan = fixed.Int26_6(511 << 6)
	dx, dy := abs6(x1-x0), abs6(y1-y0)
	if dx > maxSpan || dy > maxSpan {
		hx, hy := x0>>1+x1>>1, y0>>1+y1>>1
		antiHairline(b, x0, y0, hx, hy)
		antiHairline(b, hx, hy, x1, y1)
		return
	}
	switch {
	case dx > dy:
		horishHairline(b, x0, y0, x1, y1)
	case dy > 0:
		vertishHairline(b, x0, y0, x1, y1)
	}
}

func horishHairline(b Blitter, x0, y0, x1, y1 fixed.Int26_6) {
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	istart, istop := x0.Floor(), x1.Ceil()
	scaleStart, scaleStop := endScales(x0, x1, istop-istart)
	fy := fdot6ToFDot16(y0)

	if y0 == y1 {
		hLine(b, istart, istop, fy+fdot16Half, scaleStart, scaleStop)
		return
	}

	slope := fastDiv(y1-y0, x1-x0)
	// Move to the center of the first pixel column, then bias by half a pixel.
	fy += fdot16((int32(32-x0&fdot6Mask)*int32(slope))>>6) + fdot16Half

	if scaleStart < fdot6One {
		pixelY(b, istart, fy, smallScale(0xFF, scaleStart))
		fy += slope
		istart++
	}
	full := istop - istart
	if scaleStop > 0 {
		full--
	}
	for x := istart; x < istart+full; x++ {
		pixelY(b, x, fy, 0xFF)
		fy += slope
	}
	if scaleStop > 0 && istart+full < istop {
		pixelY(b, istop-1, fy, smallScale(0xFF, scaleStop))
	}
}

// hLine covers a horizontal hairline whose center is at fy (already biased).
func hLine(b Blitter, istart, istop int, fy fdot16, scaleStart, scaleStop fixed.Int26_6) {
	y := fy.floor()
	a := fy.frac()
	emit := func(x, n int, lower, upper uint8) {
		blitAlphaH(b, x, y, n, lower)
		blitAlphaH(b, x, y-1, n, upper)
	}
	if scaleStart > 0 {
		emit(istart, 1, smallScale(a, scaleStart), smallScale(0xFF-a, scaleStart))
		istart++
	}
	middle := istop - istart
	if scaleStop > 0 {
		middle--
	}
	if middle > 0 {
		emit(istart, middle, a, 0xFF-a)
	}
	if scaleStop > 0 && istart+middle < istop {
		emit(istop-1, 1, smallScale(a, scaleStop), smallScale(0xFF-a, scaleStop))
	}
}

func vertishHairline(b Blitter, x0, y0, x1, y1 fixed.Int26_6) {
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	istart, istop := y0.Floor(), y1.Ceil()
	scaleStart, scaleStop := endScales(y0, y1, istop-istart)
	fx := fdot6ToFDot16(x0)

	if x0 == x1 {
		vLine(b, istart, istop, fx+fdot16Half, scaleStart, scaleStop)
		return
	}

	slope := fastDiv(x1-x0, y1-y0)
	fx += fdot16((int32(32-y0&fdot6Mask)*int32(slope))>>6) + fdot16Half

	if scaleStart < fdot6One {
		pixelX(b, fx, istart, smallScale(0xFF, scaleStart))
		fx += slope
		istart++
	}
	full := istop - istart
	if scaleStop > 0 {
		full--
	}
	for y := istart; y < istart+full; y++ {
		pixelX(b, fx, y, 0xFF)
		fx += slope
	}
	if scaleStop > 0 && istart+full < istop {
		pixelX(b, fx, istop-1, smallScale(0xFF, scaleStop))
	}
}

// vLine covers a vertical hairline whose center is at fx (already biased).
func vLine(b Blitter, istart, istop int, fx fdot16, scaleStart, scaleStop fixed.Int26_6) {
	x := fx.floor()
	a := fx.frac()
	emit := func(y, n int, right, left uint8) {
		if right != 0 {
			b.BlitV(x, y, n, right)
		}
		if left != 0 {
			b.BlitV(x-1, y, n, left)
		}
	}
	if scaleStart > 0 {
		emit(istart, 1, smallScale(a, scaleStart), smallScale(0xFF-a, scaleStart))
		istart++
	}
	middle := istop - istart
	if scaleStop > 0 {
		middle--
	}
	if middle > 0 {
		emit(istart, middle, a, 0xFF-a)
	}
	if scaleStop > 0 && istart+middle < istop {
		emit(istop-1, 1, smallScale(a, scaleStop), smallScale(0xFF-a, scaleStop))
	}
}

// pixelY splits alpha between rows floor(fy)-1 and floor(fy).
func pixelY(b Blitter, x int, fy fdot16, alpha uint8) {
	if alpha == 0 {
		return
	}
	frac := fy.frac()
	b.BlitAntiV2(x, fy.floor()-1, mulDiv255(alpha, 0xFF-frac), mulDiv255(alpha, frac))
}

// pixelX splits alpha between columns floor(fx)-1 and floor(fx).
func pixelX(b Blitter, fx fdot16, y int, alpha uint8) {
	if alpha == 0 {
		return
	}
	frac := fx.frac()
	b.BlitAntiH2(fx.floor()-1, y, mulDiv255(alpha, 0xFF-frac), mulDiv255(alpha, frac))
}
