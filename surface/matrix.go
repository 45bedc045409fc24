// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a canvas transform, the top two rows of a 3x3 affine matrix:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The blur pipeline only produces scale and translate transforms; B and D
// are carried so that host canvases can report rotations.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the transform that maps every point to itself.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a transform that moves points by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a transform that scales points about the origin.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Multiply returns m * other: a point goes through other first, then m.
// Canvas.Translate and Canvas.Scale post-multiply the current matrix this way.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint maps (x, y) through m.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Invert returns the inverse of m, or Identity when m is singular.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	k := 1 / det
	return Matrix{
		A: m.E * k, B: -m.B * k, C: (m.B*m.F - m.C*m.E) * k,
		D: -m.D * k, E: m.A * k, F: (m.C*m.D - m.A*m.F) * k,
	}
}

// IsAxisAligned reports whether the matrix only scales and translates.
func (m Matrix) IsAxisAligned() bool {
	return m.B == 0 && m.D == 0
}

// Aff3 converts the matrix into the layout used by golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
