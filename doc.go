// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frost implements a live blur-behind ("frosted glass") effect for a
// view drawn over a layered 2D hierarchy.
//
// # Overview
//
// Content behind a view is captured into a small offscreen buffer before
// every frame, blurred, and drawn back beneath the view at full size:
//
//	pre-draw notification -> capture root into buffer (translated, downscaled)
//	                      -> Algorithm.Blur
//	view draw             -> scale buffer up, Algorithm.Render, overlay tint
//
// # Quick Start
//
//	alg, _ := blur.New("gaussian", blur.Options{})
//	c := frost.New(panel, root, alg,
//	    frost.WithBlurRadius(12),
//	    frost.WithOverlayColor(color.NRGBA{R: 255, G: 255, B: 255, A: 48}),
//	)
//	defer c.Destroy()
//
//	// In the view's draw method, with the canvas at the view's origin:
//	if c.Draw(canvas).ShouldDrawChildren() {
//	    drawChildren(canvas)
//	}
//
//	// When the view is measured again:
//	c.OnSizeChanged()
//
//	// When the view or the root moves to another window:
//	c.OnWindowChanged()
//
// # Capture Transform
//
// With (left, top) the view position relative to the root and sx, sy the
// ratios between the view size and the capture buffer size, the capture
// canvas is set up with
//
//	Translate(-left/sx, -top/sy)
//	Scale(1/sx, 1/sy)
//
// so that exactly the region behind the view lands in the buffer. Draw
// applies Scale(sx, sy), the exact inverse.
//
// # Re-entrancy
//
// The capture canvas carries surface.TagCapture. When the root hierarchy is
// drawn into it, every blur view's Draw sees the tag and returns
// DrawSuppressed, so no blur view captures its own or another blur view's
// output.
//
// # Threading
//
// The pipeline is frame-synchronous: capture and composite run on the
// goroutine producing frames, and the pre-draw notification always precedes
// the draw pass of the same frame. No locks are taken.
package frost
