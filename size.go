// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import "math"

// Size is a buffer or view size in pixels.
// The zero value means "not initialized".
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether either dimension is non-positive.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ScaleFactors maps capture-buffer pixels to view pixels.
// Both components are > 0 for an initialized controller.
type ScaleFactors struct {
	X float64
	Y float64
}

// scaleFactorsFor derives view/buffer ratios. Callers guarantee buf is non-zero.
func scaleFactorsFor(view, buf Size) ScaleFactors {
	return ScaleFactors{
		X: float64(view.Width) / float64(buf.Width),
		Y: float64(view.Height) / float64(buf.Height),
	}
}

// SizeScaler reduces a view size to the capture-buffer size for a given
// algorithm scale factor. Blurring at full resolution dominates the cost of
// the pipeline, so algorithms ask for a downscale (typically 4-12x) and the
// scaler enforces a floor of one pixel.
type SizeScaler struct {
	factor float64
}

// NewSizeScaler creates a scaler. A non-positive factor is treated as 1.
func NewSizeScaler(scaleFactor float64) SizeScaler {
	if !(scaleFactor > 0) {
		scaleFactor = 1
	}
	return SizeScaler{factor: scaleFactor}
}

// Factor returns the scale factor.
func (s SizeScaler) Factor() float64 {
	return s.factor
}

// IsZeroSized reports whether either dimension would floor below one pixel
// after downscaling.
func (s SizeScaler) IsZeroSized(width, height int) bool {
	return s.downscale(width) < 1 || s.downscale(height) < 1
}

// Scale returns the capture-buffer size for a view of width x height.
// The result is never zero-sized.
func (s SizeScaler) Scale(width, height int) Size {
	return Size{
		Width:  max(1, s.downscale(width)),
		Height: max(1, s.downscale(height)),
	}
}

func (s SizeScaler) downscale(v int) int {
	return int(math.Floor(float64(v) / s.factor))
}
