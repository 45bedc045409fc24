// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur

import (
	"image"
	"math"

	bildblur "github.com/anthonynsimon/bild/blur"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/surface"
)

// Options configures a blur algorithm.
type Options struct {
	// ScaleFactor is the capture downscale ratio. Zero selects
	// frost.DefaultScaleFactor.
	ScaleFactor float64
}

func (o Options) validate() error {
	if math.IsNaN(o.ScaleFactor) || math.IsInf(o.ScaleFactor, 0) || o.ScaleFactor < 0 {
		return ErrInvalidScaleFactor
	}
	return nil
}

func (o Options) scaleFactor() float64 {
	if !(o.ScaleFactor > 0) || math.IsInf(o.ScaleFactor, 0) {
		return frost.DefaultScaleFactor
	}
	return o.ScaleFactor
}

// Box is a separable box blur that works in place.
//
// Box blur is the cheapest kernel; the downscale performed by the capture
// step hides most of its blockiness.
type Box struct {
	scale float64
}

// NewBox creates a box blur.
func NewBox(opts Options) *Box {
	return &Box{scale: opts.scaleFactor()}
}

// ScaleFactor returns the preferred downscale ratio.
func (b *Box) ScaleFactor() float64 { return b.scale }

// PreferredFormat returns RGBA8.
func (b *Box) PreferredFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// CanReuseInputBuffer returns true: Blur writes into buf.
func (b *Box) CanReuseInputBuffer() bool { return true }

// Blur blurs buf in place with a box of half-width Reach(radius) and
// returns buf.
func (b *Box) Blur(buf *image.RGBA, radius float64) *image.RGBA {
	if buf == nil {
		return nil
	}
	if half := Reach(radius, buf.Rect); half > 0 {
		k := boxWeights(half)
		convolve(buf, k, k)
	}
	return buf
}

// Render draws buf under the canvas transform.
func (b *Box) Render(c surface.Canvas, buf *image.RGBA) { render(c, buf) }

// Release is a no-op; Box holds no resources.
func (b *Box) Release() {}

// Gaussian is a separable Gaussian blur that works in place.
//
// The radius is the kernel half-width in capture-buffer pixels; sigma is
// radius/3 so the kernel covers three standard deviations.
type Gaussian struct {
	scale   float64
	weights weightCache
}

// NewGaussian creates a Gaussian blur.
func NewGaussian(opts Options) *Gaussian {
	return &Gaussian{scale: opts.scaleFactor()}
}

// ScaleFactor returns the preferred downscale ratio.
func (g *Gaussian) ScaleFactor() float64 { return g.scale }

// PreferredFormat returns RGBA8.
func (g *Gaussian) PreferredFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// CanReuseInputBuffer returns true: Blur writes into buf.
func (g *Gaussian) CanReuseInputBuffer() bool { return true }

// Blur blurs buf in place and returns buf.
func (g *Gaussian) Blur(buf *image.RGBA, radius float64) *image.RGBA {
	if buf == nil {
		return nil
	}
	if half := Reach(radius, buf.Rect); half > 0 {
		k := g.weights.get(radius, half)
		convolve(buf, k, k)
	}
	return buf
}

// Render draws buf under the canvas transform.
func (g *Gaussian) Render(c surface.Canvas, buf *image.RGBA) { render(c, buf) }

// Release drops the cached weights.
func (g *Gaussian) Release() { g.weights.reset() }

// Bild blurs with github.com/anthonynsimon/bild. Every pass allocates the
// result, so the controller rebinds its capture canvas after each blur.
type Bild struct {
	scale float64
}

// NewBild creates a bild-backed Gaussian blur.
func NewBild(opts Options) *Bild {
	return &Bild{scale: opts.scaleFactor()}
}

// ScaleFactor returns the preferred downscale ratio.
func (b *Bild) ScaleFactor() float64 { return b.scale }

// PreferredFormat returns RGBA8.
func (b *Bild) PreferredFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// CanReuseInputBuffer returns false: Blur returns a new buffer.
func (b *Bild) CanReuseInputBuffer() bool { return false }

// Blur returns a blurred copy of buf. The radius is capped at Reach, like
// the in-place algorithms.
func (b *Bild) Blur(buf *image.RGBA, radius float64) *image.RGBA {
	if buf == nil {
		return nil
	}
	r := float64(Reach(radius, buf.Rect))
	if radius < r {
		r = radius
	}
	return bildblur.Gaussian(buf, r)
}

// Render draws buf under the canvas transform.
func (b *Bild) Render(c surface.Canvas, buf *image.RGBA) { render(c, buf) }

// Release is a no-op; Bild holds no resources.
func (b *Bild) Release() {}

func render(c surface.Canvas, buf *image.RGBA) {
	if c == nil || buf == nil {
		return
	}
	c.DrawImage(buf)
}

var (
	_ frost.Algorithm = (*Box)(nil)
	_ frost.Algorithm = (*Gaussian)(nil)
	_ frost.Algorithm = (*Bild)(nil)
)
