// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"image"

	"github.com/gogpu/frost/frame"
	"github.com/gogpu/frost/surface"
)

// Window is a top-level surface with its own frame stream.
type Window struct {
	origin   image.Point
	notifier *frame.Notifier
	root     *Node
}

// NewWindow creates a window of the given size at origin in screen space.
func NewWindow(name string, origin image.Point, width, height int) *Window {
	w := &Window{
		origin:   origin,
		notifier: frame.NewNotifier(name),
	}
	w.root = NewNode(image.Rect(0, 0, width, height), nil)
	w.root.setWindow(w)
	return w
}

// Name returns the window name.
func (w *Window) Name() string { return w.notifier.Name() }

// Root returns the root node.
func (w *Window) Root() *Node { return w.root }

// Origin returns the window position in screen space.
func (w *Window) Origin() image.Point { return w.origin }

// Move places the window at origin. Blur panels pick up the new position on
// the next capture.
func (w *Window) Move(origin image.Point) { w.origin = origin }

// Size returns the window size.
func (w *Window) Size() (int, int) { return w.root.Size() }

// Notifier returns the window's pre-draw stream.
func (w *Window) Notifier() *frame.Notifier { return w.notifier }

// Frame runs one frame: pre-draw listeners first, then the draw pass into c.
// It reports false when a listener vetoed the frame.
func (w *Window) Frame(c surface.Canvas) bool {
	if !w.notifier.DispatchPreDraw() {
		return false
	}
	w.root.DrawInto(c)
	return true
}

// Render runs one frame into a new image of the window size.
func (w *Window) Render() *image.RGBA {
	width, height := w.Size()
	c := surface.NewImageCanvas(width, height)
	w.Frame(c)
	return c.Image()
}
