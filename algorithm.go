// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/frost/surface"
)

// Default pipeline parameters.
const (
	// DefaultBlurRadius is the blur radius, in capture-buffer pixels, used
	// when none is configured.
	DefaultBlurRadius = 16.0

	// DefaultScaleFactor is the downscale ratio for algorithms that do not
	// prefer a specific one.
	DefaultScaleFactor = 6.0
)

// Algorithm is the capability contract of a blur implementation.
//
// The controller owns the capture buffer but hands it to Blur every frame.
// An algorithm that reports CanReuseInputBuffer blurs in place and returns
// the same buffer; otherwise it returns a new buffer and the controller
// rebinds its capture canvas to it. The controller never reuses a buffer
// returned by a non-reusing algorithm as the input of a different one.
type Algorithm interface {
	// ScaleFactor returns the preferred downscale ratio (> 0).
	ScaleFactor() float64

	// PreferredFormat returns the pixel format the capture buffer should use.
	PreferredFormat() gputypes.TextureFormat

	// Blur blurs buf with the given radius and returns the result.
	Blur(buf *image.RGBA, radius float64) *image.RGBA

	// CanReuseInputBuffer reports whether Blur modifies buf in place.
	CanReuseInputBuffer() bool

	// Render draws buf at the canvas origin under the canvas transform.
	Render(c surface.Canvas, buf *image.RGBA)

	// Release frees resources held by the algorithm. Idempotent.
	Release()
}
