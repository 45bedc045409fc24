// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur

import (
	"image"
	"math"
	"sync"
)

// Reach returns the kernel half-width, in pixels, for a blur radius over a
// buffer with bounds b. Fractional radii round up. The result never exceeds
// the longer side of b: taps past it only sample clamped edge pixels.
// Non-positive and NaN radii reach 0.
func Reach(radius float64, b image.Rectangle) int {
	span := max(b.Dx(), b.Dy())
	if !(radius > 0) || span <= 0 {
		return 0
	}
	if radius >= float64(span) {
		return span
	}
	return int(math.Ceil(radius))
}

// boxWeights returns 2*half+1 equal weights.
func boxWeights(half int) []float32 {
	w := make([]float32, 2*half+1)
	v := 1 / float32(len(w))
	for i := range w {
		w[i] = v
	}
	return w
}

// gaussianWeights returns 2*half+1 normalized weights of a Gaussian with
// sigma = radius/3. When half was capped by Reach the curve keeps its sigma
// and is truncated at the buffer span.
func gaussianWeights(half int, radius float64) []float32 {
	if half == 0 {
		return []float32{1}
	}
	w := make([]float32, 2*half+1)
	twoSigmaSq := 2 * (radius / 3) * (radius / 3)

	var sum float64
	for i := range w {
		d := float64(i - half)
		v := math.Exp(-d * d / twoSigmaSq)
		w[i] = float32(v)
		sum += v
	}
	for i := range w {
		w[i] = float32(float64(w[i]) / sum)
	}
	return w
}

// weightCache holds the Gaussian weights of the last (radius, half-width)
// pair. A controller blurs every frame with the same radius and buffer, so
// the weights are rebuilt only when either changes.
type weightCache struct {
	mu      sync.Mutex
	radius  float64
	half    int
	weights []float32
}

func (c *weightCache) get(radius float64, half int) []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.weights == nil || c.radius != radius || c.half != half {
		c.radius, c.half = radius, half
		c.weights = gaussianWeights(half, radius)
	}
	return c.weights
}

func (c *weightCache) reset() {
	c.mu.Lock()
	c.weights = nil
	c.mu.Unlock()
}

func (c *weightCache) empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weights == nil
}
