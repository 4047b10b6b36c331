package scan

// alphaRuns is one pixel row of accumulated supersampled coverage, stored
// run-length encoded in the layout Blitter.BlitAntiH expects.
type alphaRuns struct {
	runs  []uint16
	alpha []uint8
}

func newAlphaRuns(width int) *alphaRuns {
	width = max(width, 1)
	ar := &alphaRuns{
		runs:  make([]uint16, width+1),
		alpha: make([]uint8, width+1),
	}
	ar.reset(width)
	return ar
}

// catchOverflow maps 256 (four full samples of 64) to 255.
func catchOverflow(alpha uint16) uint8 {
	alpha = min(alpha, 256)
	return uint8(alpha - alpha>>8)
}

func (ar *alphaRuns) isEmpty() bool {
	if ar.runs[0] == 0 {
		return true
	}
	return ar.alpha[0] == 0 && ar.runs[ar.runs[0]] == 0
}

func (ar *alphaRuns) reset(width int) {
	width = min(max(width, 1), 0xFFFF)
	ar.runs[0] = uint16(width)
	ar.runs[width] = 0
	ar.alpha[0] = 0
}

// add accumulates a partial pixel at x, middleCount full pixels and a partial
// pixel after them. offsetX is the run index a previous call on the same
// sample row stopped at; add returns the new one so consecutive spans do not
// rescan the row.
func (ar *alphaRuns) add(x int, startAlpha uint8, middleCount int, stopAlpha, maxValue uint8, offsetX int) int {
	if x < 0 {
		return offsetX
	}
	runsOff, alphaOff, lastOff := offsetX, offsetX, offsetX
	x -= offsetX

	if startAlpha != 0 {
		ar.breakRun(runsOff, x, 1)
		ar.alpha[alphaOff+x] = catchOverflow(uint16(ar.alpha[alphaOff+x]) + uint16(startAlpha))
		runsOff += x + 1
		alphaOff += x + 1
		x = 0
	}

	if middleCount > 0 {
		ar.breakRun(runsOff, x, middleCount)
		alphaOff += x
		runsOff += x
		x = 0
		for middleCount > 0 {
			ar.alpha[alphaOff] = catchOverflow(uint16(ar.alpha[alphaOff]) + uint16(maxValue))
			n := int(ar.runs[runsOff])
			if n <= 0 {
				break
			}
			n = min(n, middleCount)
			alphaOff += n
			runsOff += n
			middleCount -= n
		}
		lastOff = alphaOff
	}

	if stopAlpha != 0 {
		ar.breakRun(runsOff, x, 1)
		alphaOff += x
		ar.alpha[alphaOff] += stopAlpha
		lastOff = alphaOff
	}
	return lastOff
}

// breakRun splits runs so that [x, x+count) relative to off starts and ends
// on run boundaries.
func (ar *alphaRuns) breakRun(off, x, count int) {
	if count <= 0 {
		return
	}
	i := off
	for rem := x; rem > 0; {
		n := int(ar.runs[i])
		if n <= 0 {
			return
		}
		if rem < n {
			ar.alpha[i+rem] = ar.alpha[i]
			ar.runs[i] = uint16(rem)
			ar.runs[i+rem] = uint16(n - rem)
			break
		}
		i += n
		rem -= n
	}

	i = off + x
	for rem := count; ; {
		n := int(ar.runs[i])
		if n <= 0 {
			return
		}
		if rem < n {
			ar.alpha[i+rem] = ar.alpha[i]
			ar.runs[i] = uint16(rem)
			ar.runs[i+rem] = uint16(n - rem)
			return
		}
		rem -= n
		if rem == 0 {
			return
		}
		i += n
	}
}
