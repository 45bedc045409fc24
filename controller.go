// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import (
	"image"
	"image/color"
	"reflect"

	"github.com/gogpu/frost/surface"
)

// DrawStatus is the outcome of Controller.Draw.
type DrawStatus uint8

const (
	// DrawPassThrough means the pipeline is disabled or not initialized and
	// the host should perform its default drawing.
	DrawPassThrough DrawStatus = iota

	// DrawComposited means the blurred content was drawn; the host continues
	// with the view's children.
	DrawComposited

	// DrawSuppressed means the canvas is a capture canvas: draw nothing and
	// do not traverse children.
	DrawSuppressed
)

// ShouldDrawChildren reports whether the host should continue drawing the
// view's own content and children.
func (s DrawStatus) ShouldDrawChildren() bool {
	return s != DrawSuppressed
}

// String returns the status name.
func (s DrawStatus) String() string {
	switch s {
	case DrawPassThrough:
		return "pass-through"
	case DrawComposited:
		return "composited"
	case DrawSuppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// Controller drives the blur-behind pipeline for one view.
//
// On every pre-draw notification it captures the part of the root hierarchy
// that lies behind the view into a downscaled offscreen buffer and blurs it.
// When the host draws the view, Draw scales the blurred buffer back up to
// the view size and composites it, optionally tinted by an overlay color.
//
// Controller is NOT safe for concurrent use. All methods must be called from
// the goroutine producing frames.
type Controller struct {
	view    View
	root    Root
	alg     Algorithm
	trigger *RedrawTrigger
	capture *captureSurface

	radius     float64
	overlay    color.NRGBA
	frameClear color.Color

	enabled     bool
	initialized bool
	autoUpdate  bool
	destroyed   bool
}

// New creates a controller blurring the content of root behind view.
//
// If view already has a non-zero measured size the capture buffer is
// allocated immediately and one capture pass runs; otherwise initialization
// waits for OnSizeChanged.
func New(view View, root Root, alg Algorithm, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		view:       view,
		root:       root,
		alg:        alg,
		radius:     o.radius,
		overlay:    o.overlay,
		frameClear: o.frameClear,
		enabled:    o.enabled,
		autoUpdate: o.autoUpdate,
	}
	c.trigger = NewRedrawTrigger(c.UpdateBlur)
	c.syncTrigger()
	c.init()
	return c
}

// init (re)allocates the capture surface for the current view size.
func (c *Controller) init() {
	w, h := c.view.Size()
	scaler := NewSizeScaler(c.alg.ScaleFactor())

	c.releaseCapture()
	if scaler.IsZeroSized(w, h) {
		c.initialized = false
		c.setWillNotDraw(true)
		return
	}

	c.setWillNotDraw(false)
	c.capture = newCaptureSurface(scaler.Scale(w, h), c.alg.PreferredFormat())
	c.initialized = true

	// The pre-draw stream of another window may not fire before the next
	// draw call, so the buffer must hold a blurred frame right away.
	c.UpdateBlur()
}

// UpdateBlur captures the root hierarchy behind the view and blurs it.
// It is a no-op while the pipeline is disabled or not initialized.
func (c *Controller) UpdateBlur() {
	if !c.enabled || !c.initialized {
		return
	}
	f, ok := c.scaleFactors()
	if !ok {
		return
	}

	if c.frameClear != nil {
		c.capture.canvas.Clear(c.frameClear)
	} else {
		c.capture.Erase()
	}
	c.captureRoot(f)

	c.capture.Rebind(c.alg.Blur(c.capture.buf, c.radius))
}

// captureRoot draws the root so that the region behind the view lands in
// the capture buffer, downscaled by f.
func (c *Controller) captureRoot(f ScaleFactors) {
	cv := c.capture.canvas
	cv.Push()
	defer cv.Pop()

	offset := c.view.ScreenPosition().Sub(c.root.ScreenPosition())
	cv.Translate(-float64(offset.X)/f.X, -float64(offset.Y)/f.Y)
	cv.Scale(1/f.X, 1/f.Y)

	c.root.DrawInto(cv)
}

// Draw composites the blurred content onto cv, which must be positioned at
// the view's top-left corner.
func (c *Controller) Draw(cv surface.Canvas) DrawStatus {
	// Not blurring itself or other blur views, that would recurse.
	if cv.Tag().Has(surface.TagCapture) {
		return DrawSuppressed
	}
	if !c.enabled || !c.initialized {
		return DrawPassThrough
	}
	f, ok := c.scaleFactors()
	if !ok {
		return DrawPassThrough
	}

	cv.Push()
	cv.Scale(f.X, f.Y)
	c.alg.Render(cv, c.capture.buf)
	cv.Pop()

	if c.overlay.A != 0 {
		w, h := c.view.Size()
		cv.FillRect(0, 0, float64(w), float64(h), c.overlay)
	}
	return DrawComposited
}

// OnSizeChanged must be called when the measured size of the view changes.
// The capture buffer is always recreated, never resized in place.
func (c *Controller) OnSizeChanged() {
	if c.destroyed {
		return
	}
	c.init()
}

// OnWindowChanged must be called when the view or the root moves to another
// window, or is attached to or detached from one. The redraw trigger
// re-reads both frame sources and one capture runs at the new position.
func (c *Controller) OnWindowChanged() {
	if c.destroyed {
		return
	}
	c.syncTrigger()
	c.UpdateBlur()
}

// SetBlurRadius sets the blur radius in capture-buffer pixels, applied from
// the next capture. Negative values are treated as 0.
func (c *Controller) SetBlurRadius(radius float64) {
	c.radius = max(0, radius)
}

// SetEnabled switches the whole pipeline on or off. While disabled, capture
// does nothing and Draw passes through.
func (c *Controller) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	c.syncTrigger()
}

// SetAutoUpdate controls whether captures run on every pre-draw
// notification. With auto update off, hosts call UpdateBlur themselves.
func (c *Controller) SetAutoUpdate(enabled bool) {
	c.autoUpdate = enabled
	c.syncTrigger()
}

// SetOverlayColor sets the tint drawn over the blurred content.
func (c *Controller) SetOverlayColor(col color.Color) {
	c.overlay = toNRGBA(col)
}

// SetFrameClearColor sets the fill used before each capture; nil restores
// clearing to transparent.
func (c *Controller) SetFrameClearColor(col color.Color) {
	c.frameClear = col
}

// SetAlgorithm swaps the blur algorithm. The previous algorithm is released
// and the capture buffer is recreated for the new scale factor and format.
func (c *Controller) SetAlgorithm(alg Algorithm) {
	if alg == nil || c.destroyed || sameAlgorithm(alg, c.alg) {
		return
	}
	c.alg.Release()
	c.alg = alg
	Logger().Debug("frost: blur algorithm swapped", "scale_factor", alg.ScaleFactor())
	c.init()
}

// Destroy stops capturing, releases the algorithm and drops the capture
// buffer, in that order. Destroy is idempotent.
func (c *Controller) Destroy() {
	c.trigger.Detach()
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.alg.Release()
	c.releaseCapture()
	c.initialized = false
}

// Enabled reports whether the pipeline is switched on.
func (c *Controller) Enabled() bool { return c.enabled }

// Initialized reports whether a capture buffer is allocated.
func (c *Controller) Initialized() bool { return c.initialized }

// AutoUpdate reports whether captures run on pre-draw notifications.
func (c *Controller) AutoUpdate() bool { return c.autoUpdate }

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool { return c.destroyed }

// BlurRadius returns the blur radius.
func (c *Controller) BlurRadius() float64 { return c.radius }

// OverlayColor returns the overlay tint.
func (c *Controller) OverlayColor() color.NRGBA { return c.overlay }

// Algorithm returns the current blur algorithm.
func (c *Controller) Algorithm() Algorithm { return c.alg }

// Trigger returns the redraw trigger driving automatic captures.
func (c *Controller) Trigger() *RedrawTrigger { return c.trigger }

// CaptureSize returns the capture buffer size, or the zero Size when the
// controller is not initialized.
func (c *Controller) CaptureSize() Size {
	if c.capture == nil {
		return Size{}
	}
	return c.capture.Size()
}

// ScaleFactors returns the current view/buffer ratios, or the zero value
// when the controller is not initialized.
func (c *Controller) ScaleFactors() ScaleFactors {
	f, _ := c.scaleFactors()
	return f
}

// Buffer returns the current blurred buffer. The buffer is owned by the
// controller and is overwritten by the next capture.
func (c *Controller) Buffer() *image.RGBA {
	if c.capture == nil {
		return nil
	}
	return c.capture.buf
}

func (c *Controller) scaleFactors() (ScaleFactors, bool) {
	if c.capture == nil {
		return ScaleFactors{}, false
	}
	w, h := c.view.Size()
	view := Size{Width: w, Height: h}
	if view.IsZero() {
		return ScaleFactors{}, false
	}
	return scaleFactorsFor(view, c.capture.Size()), true
}

// sameAlgorithm reports whether a and b point to the same algorithm.
// Non-pointer algorithms are never the same; comparing them with == could
// panic on non-comparable types.
func sameAlgorithm(a, b Algorithm) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	return va.Kind() == reflect.Pointer && reflect.TypeOf(b) == va.Type() && va.Pointer() == vb.Pointer()
}

func (c *Controller) syncTrigger() {
	c.trigger.Detach()
	if c.destroyed || !c.autoUpdate || !c.enabled {
		return
	}
	c.trigger.Attach(c.root.FrameSource(), c.view.FrameSource())
}

func (c *Controller) releaseCapture() {
	if c.capture == nil {
		return
	}
	c.capture.Release()
	c.capture = nil
}

func (c *Controller) setWillNotDraw(willNotDraw bool) {
	if s, ok := c.view.(WillNotDrawSetter); ok {
		s.SetWillNotDraw(willNotDraw)
	}
}
