// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import "image/color"

// Option configures a Controller during creation.
// Use functional options to customize the pipeline.
//
// Example:
//
//	c := frost.New(view, root, blur.NewGaussian(blur.Options{}),
//	    frost.WithBlurRadius(12),
//	    frost.WithOverlayColor(color.NRGBA{R: 255, G: 255, B: 255, A: 64}),
//	)
type Option func(*controllerOptions)

// controllerOptions holds optional configuration for Controller creation.
type controllerOptions struct {
	radius     float64
	overlay    color.NRGBA
	frameClear color.Color
	autoUpdate bool
	enabled    bool
}

// defaultOptions returns the default controller options.
func defaultOptions() controllerOptions {
	return controllerOptions{
		radius:     DefaultBlurRadius,
		autoUpdate: true,
		enabled:    true,
	}
}

// WithBlurRadius sets the blur radius in capture-buffer pixels.
// Negative values are treated as 0.
func WithBlurRadius(radius float64) Option {
	return func(o *controllerOptions) {
		o.radius = max(0, radius)
	}
}

// WithOverlayColor sets the tint composited over the blurred content.
// A fully transparent color disables the overlay.
func WithOverlayColor(c color.Color) Option {
	return func(o *controllerOptions) {
		o.overlay = toNRGBA(c)
	}
}

// WithFrameClearColor fills the capture buffer with c before every capture
// instead of clearing it to transparent. Useful when the root hierarchy has
// no opaque background of its own.
func WithFrameClearColor(c color.Color) Option {
	return func(o *controllerOptions) {
		o.frameClear = c
	}
}

// WithAutoUpdate controls whether the controller recaptures on every
// pre-draw notification. Defaults to true.
func WithAutoUpdate(enabled bool) Option {
	return func(o *controllerOptions) {
		o.autoUpdate = enabled
	}
}

// WithEnabled sets the initial state of the pipeline kill switch.
// Defaults to true.
func WithEnabled(enabled bool) Option {
	return func(o *controllerOptions) {
		o.enabled = enabled
	}
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
