// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blur provides frost.Algorithm implementations.
//
//   - Gaussian: separable Gaussian, in place, weights cached per radius
//   - Box: separable box blur, in place
//   - Bild: github.com/anthonynsimon/bild Gaussian, allocates its result
//
// All algorithms operate on premultiplied *image.RGBA capture buffers and
// render by drawing the buffer through the canvas transform. Algorithms are
// also available by name through the registry ("gaussian", "box", "bild").
package blur
