// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/gogpu/frost/surface"
)

// drawBackground renders the static scene behind the panel.
func drawBackground(w, h int) image.Image {
	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, color.RGBA{R: 26, G: 51, B: 102, A: 255})
	grad.AddColorStop(1, color.RGBA{R: 128, G: 128, B: 153, A: 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	// Thin stripes make the blur easy to see.
	dc.SetRGBA(1, 1, 1, 0.35)
	for x := 0.0; x < float64(w); x += 24 {
		dc.DrawRectangle(x, 0, 6, float64(h))
	}
	dc.Fill()

	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy) / 3
	circles := []struct {
		dx, dy     float64
		r, g, b, a float64
	}{
		{-r, -r / 2, 1, 0.3, 0.3, 0.85},
		{0, r / 2, 0.3, 1, 0.3, 0.85},
		{r, -r / 2, 0.3, 0.3, 1, 0.85},
	}
	for _, c := range circles {
		dc.SetRGBA(c.r, c.g, c.b, c.a)
		dc.DrawCircle(cx+c.dx, cy+c.dy, r)
		dc.Fill()
	}

	dc.SetRGB(1, 0.8, 0)
	dc.DrawRoundedRectangle(cx-r/2, float64(h)-r*1.5, r, r, r/6)
	dc.Fill()

	return dc.Image()
}

// paintImage returns a Paint func that draws img at the node origin.
func paintImage(img image.Image) func(c surface.Canvas) {
	return func(c surface.Canvas) { c.DrawImage(img) }
}

// paintPanel draws the panel chrome: a title bar and a content line.
func paintPanel(w, h int) func(c surface.Canvas) {
	bar := color.NRGBA{R: 255, G: 255, B: 255, A: 90}
	line := color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	return func(c surface.Canvas) {
		c.FillRect(0, 0, float64(w), float64(h)/8, bar)
		c.FillRect(float64(w)/8, float64(h)/2, float64(w)*3/4, 2, line)
	}
}

// panelBounds places the panel for frame i of n. The panel slides from the
// left edge to the right edge of the scene.
func panelBounds(i, n, w, h int) image.Rectangle {
	pw, ph := w/2, h/3
	x := (w - pw) / 2
	if n > 1 {
		x = (w - pw) * i / (n - 1)
	}
	y := (h - ph) / 2
	return image.Rect(x, y, x+pw, y+ph)
}
