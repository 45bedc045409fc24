// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the drawing-context abstraction used by the blur
// pipeline.
//
// A Canvas is a rendering target with a save/restore transform stack and a
// handful of compositing primitives: clear, rectangle fill and transformed
// image draw. That is the whole surface the capture and composite steps
// need, which keeps host bindings small:
//
//   - ImageCanvas: CPU canvas over *image.RGBA, drawing through fogleman/gg
//   - gpu.Target: composite target that uploads into a gpucontext texture drawer
//
// # Tags
//
// Every canvas carries a Tag. Offscreen capture canvases are created with
// TagCapture so that blur views can recognise them and skip drawing,
// preventing a blur pass from capturing its own (or another blur view's)
// output:
//
//	capture := surface.NewImageCanvas(50, 37, surface.WithTag(surface.TagCapture))
//	if capture.Tag().Has(surface.TagCapture) {
//	    // do not draw blurred content here
//	}
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Translate
// and Scale compose with the current transform, so
//
//	c.Translate(-10, -20)
//	c.Scale(0.125, 0.125)
//
// maps a point p to Translate(-10,-20) * Scale(0.125,0.125) * p.
package surface
