//go:build fuzzhardening

package raster

const fuzzHardening = true
