// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ImageCanvas is a CPU canvas that renders into an *image.RGBA.
//
// Drawing is delegated to a fogleman/gg context bound to the image, so hosts
// can reach for the full vector API through Context while the blur pipeline
// uses the narrow Canvas interface. ImageCanvas mirrors the transform stack
// so that Matrix always reports the exact current transform.
//
// Example:
//
//	c := surface.NewImageCanvas(800, 600)
//	c.Clear(color.White)
//	c.Push()
//	c.Translate(100, 50)
//	c.FillRect(0, 0, 200, 100, color.NRGBA{R: 255, A: 255})
//	c.Pop()
type ImageCanvas struct {
	img    *image.RGBA
	dc     *gg.Context
	matrix Matrix
	stack  []Matrix
	tag    Tag
}

// CanvasOption configures an ImageCanvas during creation.
type CanvasOption func(*canvasOptions)

type canvasOptions struct {
	tag Tag
}

// WithTag sets the capability tag reported by the canvas.
func WithTag(t Tag) CanvasOption {
	return func(o *canvasOptions) {
		o.tag = t
	}
}

// NewImageCanvas creates a canvas backed by a new image of the given size.
// Non-positive dimensions are clamped to 1.
func NewImageCanvas(width, height int, opts ...CanvasOption) *ImageCanvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return NewImageCanvasForRGBA(image.NewRGBA(image.Rect(0, 0, width, height)), opts...)
}

// NewImageCanvasForRGBA creates a canvas that draws directly into img.
func NewImageCanvasForRGBA(img *image.RGBA, opts ...CanvasOption) *ImageCanvas {
	o := canvasOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &ImageCanvas{
		img:    img,
		dc:     gg.NewContextForRGBA(img),
		matrix: Identity(),
		tag:    o.tag,
	}
}

// Width returns the canvas width.
func (c *ImageCanvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the canvas height.
func (c *ImageCanvas) Height() int {
	return c.img.Bounds().Dy()
}

// Image returns the bound image. This is a direct reference, not a copy.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Context returns the underlying fogleman/gg context.
// Its transform is kept in sync with the canvas transform.
func (c *ImageCanvas) Context() *gg.Context {
	return c.dc
}

// Tag returns the canvas capability tag.
func (c *ImageCanvas) Tag() Tag {
	return c.tag
}

// SetImage rebinds the canvas to img.
//
// The current transform is carried over; the save stack is discarded, so
// SetImage is meant to be called between frames, never inside Push/Pop.
func (c *ImageCanvas) SetImage(img *image.RGBA) {
	c.img = img
	c.dc = gg.NewContextForRGBA(img)
	c.stack = c.stack[:0]
	if c.matrix != Identity() {
		// Only axis-aligned transforms can be built through the Canvas API.
		c.dc.Translate(c.matrix.C, c.matrix.F)
		c.dc.Scale(c.matrix.A, c.matrix.E)
	}
}

// Push saves the current transform.
func (c *ImageCanvas) Push() {
	c.stack = append(c.stack, c.matrix)
	c.dc.Push()
}

// Pop restores the last saved transform.
func (c *ImageCanvas) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

// Depth returns the number of saved states.
func (c *ImageCanvas) Depth() int {
	return len(c.stack)
}

// Translate moves the origin.
func (c *ImageCanvas) Translate(x, y float64) {
	c.matrix = c.matrix.Multiply(Translate(x, y))
	c.dc.Translate(x, y)
}

// Scale scales the current space.
func (c *ImageCanvas) Scale(x, y float64) {
	c.matrix = c.matrix.Multiply(Scale(x, y))
	c.dc.Scale(x, y)
}

// Matrix returns the current transform.
func (c *ImageCanvas) Matrix() Matrix {
	return c.matrix
}

// Clear replaces every pixel with col.
func (c *ImageCanvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// Erase resets every pixel to fully transparent.
func (c *ImageCanvas) Erase() {
	clear(c.img.Pix)
}

// FillRect composites col into the rectangle under the current transform.
func (c *ImageCanvas) FillRect(x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// DrawImage composites img at the current origin under the current transform.
func (c *ImageCanvas) DrawImage(img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	c.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
}

// SavePNG writes the canvas contents to a PNG file.
func (c *ImageCanvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
