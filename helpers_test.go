// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/frost/frame"
	"github.com/gogpu/frost/surface"
)

// Test fakes shared across controller and trigger tests.

// fakeView is a blurred view with a settable size and position.
type fakeView struct {
	pos         image.Point
	width       int
	height      int
	source      frame.Source
	willNotDraw bool
}

func (v *fakeView) ScreenPosition() image.Point { return v.pos }
func (v *fakeView) Size() (int, int)            { return v.width, v.height }
func (v *fakeView) FrameSource() frame.Source   { return v.source }
func (v *fakeView) SetWillNotDraw(b bool)       { v.willNotDraw = b }

// fakeRoot paints with a callback and counts draws.
type fakeRoot struct {
	pos    image.Point
	source frame.Source
	paint  func(c surface.Canvas)
	draws  int
	matrix surface.Matrix
}

func (r *fakeRoot) ScreenPosition() image.Point { return r.pos }
func (r *fakeRoot) FrameSource() frame.Source   { return r.source }

func (r *fakeRoot) DrawInto(c surface.Canvas) {
	r.draws++
	r.matrix = c.Matrix()
	if r.paint != nil {
		r.paint(c)
	}
}

// fakeAlgorithm leaves pixels untouched. Without reuse it returns a copy,
// like algorithms that allocate their result.
type fakeAlgorithm struct {
	scale    float64
	reuse    bool
	format   gputypes.TextureFormat
	inputs   []*image.RGBA
	outputs  []*image.RGBA
	radii    []float64
	renders  int
	matrix   surface.Matrix
	releases int

	onRelease func()
}

func newFakeAlgorithm(scale float64, reuse bool) *fakeAlgorithm {
	return &fakeAlgorithm{
		scale:  scale,
		reuse:  reuse,
		format: gputypes.TextureFormatRGBA8Unorm,
	}
}

func (a *fakeAlgorithm) ScaleFactor() float64                    { return a.scale }
func (a *fakeAlgorithm) PreferredFormat() gputypes.TextureFormat { return a.format }
func (a *fakeAlgorithm) CanReuseInputBuffer() bool               { return a.reuse }

func (a *fakeAlgorithm) Release() {
	a.releases++
	if a.onRelease != nil {
		a.onRelease()
	}
}

func (a *fakeAlgorithm) Blur(buf *image.RGBA, radius float64) *image.RGBA {
	a.inputs = append(a.inputs, buf)
	a.radii = append(a.radii, radius)

	out := buf
	if !a.reuse {
		out = image.NewRGBA(buf.Bounds())
		copy(out.Pix, buf.Pix)
	}
	a.outputs = append(a.outputs, out)
	return out
}

func (a *fakeAlgorithm) Render(c surface.Canvas, buf *image.RGBA) {
	a.renders++
	a.matrix = c.Matrix()
	c.DrawImage(buf)
}

func (a *fakeAlgorithm) blurs() int { return len(a.inputs) }

// fillAll paints an opaque rectangle far larger than any test canvas.
func fillAll(col color.Color) func(c surface.Canvas) {
	return func(c surface.Canvas) {
		c.FillRect(-1000, -1000, 4000, 4000, col)
	}
}

func near(a, b, tolerance float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
