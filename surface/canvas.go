// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
)

// Canvas is a drawing context bound to a pixel target.
//
// The transform state is a stack: Push saves the current matrix and Pop
// restores it. Translate and Scale compose with the current matrix so that
// later calls act in the already transformed space, the same way HTML Canvas
// and fogleman/gg behave.
//
// Canvases are NOT thread-safe. A canvas belongs to the goroutine producing
// the frame.
type Canvas interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Push saves the current transform.
	Push()

	// Pop restores the transform saved by the matching Push.
	// Pop without a matching Push is a no-op.
	Pop()

	// Translate moves the origin by (x, y) in the current space.
	Translate(x, y float64)

	// Scale scales the current space by (x, y).
	Scale(x, y float64)

	// Matrix returns the current transform.
	Matrix() Matrix

	// Clear replaces every pixel of the target with c, ignoring the transform.
	Clear(c color.Color)

	// FillRect composites c source-over into the rectangle (x, y, w, h)
	// given in the current space.
	FillRect(x, y, w, h float64, c color.Color)

	// DrawImage composites img source-over with its top-left corner at the
	// current origin, mapped through the current transform.
	DrawImage(img image.Image)

	// Tag reports the capability flags carried by this canvas.
	Tag() Tag
}

// Tag is a set of capability flags carried alongside a canvas.
//
// Tags replace type identity checks: code that must treat special canvases
// differently (for example offscreen capture targets) inspects the tag
// instead of the concrete type.
type Tag uint8

// TagNone is the tag of an ordinary, presentable canvas.
const TagNone Tag = 0

const (
	// TagCapture marks a canvas that snapshots background content for a
	// blur pass. Blur views must not draw themselves into it.
	TagCapture Tag = 1 << iota

	// TagOffscreen marks a canvas that is never presented directly.
	TagOffscreen
)

// Has reports whether all bits of flag are set in t.
func (t Tag) Has(flag Tag) bool {
	return flag != 0 && t&flag == flag
}

// String returns a readable representation of the tag set.
func (t Tag) String() string {
	switch {
	case t == TagNone:
		return "none"
	case t.Has(TagCapture | TagOffscreen):
		return "capture|offscreen"
	case t.Has(TagCapture):
		return "capture"
	case t.Has(TagOffscreen):
		return "offscreen"
	default:
		return "unknown"
	}
}
