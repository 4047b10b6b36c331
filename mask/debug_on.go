//go:build maskdebug

package mask

import (
	"fmt"
	"slices"
)

func checkFormat(m *Mask, want ...Format) {
	if !slices.Contains(want, m.Format) {
		panic(fmt.Sprintf("mask: format %v, want one of %v", m.Format, want))
	}
}

func checkAddr(m *Mask, x, y int) {
	if m.Image == nil {
		panic("mask: no image")
	}
	if !m.Bounds.ContainsXY(x, y) {
		panic(fmt.Sprintf("mask: (%d, %d) outside %v", x, y, m.Bounds))
	}
}
