// Package geom holds the geometric value types shared by every stage of the
// coverage pipeline: points, float and integer rectangles, 3x3 matrices,
// paths and rounded rectangles.
//
// Coordinates are float64. Paths are built with MoveTo/LineTo/QuadTo/ConicTo/
// CubicTo/Close and carry a fill type. Rounded rectangles store one radius
// pair per corner, clockwise from the upper left.
//
// All types are plain values or small owned structs and are not safe for
// concurrent mutation.
package geom
