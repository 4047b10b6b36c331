// Package scan converts device-space geometry into coverage and hands it to a
// Blitter.
//
// Every converter takes the clip explicitly and never emits coverage outside
// it. Anti-aliased fills use 4x4 supersampling accumulated into run-length
// encoded alpha rows; anti-aliased hairlines use a 26.6 fixed-point walker
// that splits each sample across the two nearest pixels.
package scan
