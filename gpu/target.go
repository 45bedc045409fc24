// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/frost"
	"github.com/gogpu/frost/surface"
)

// textureDestroyer is implemented by textures that hold GPU memory.
type textureDestroyer interface {
	Destroy()
}

// Target is a surface.Canvas that draws onto a gpucontext.TextureDrawer.
//
// Every draw call is rasterized on the CPU into a texture sized to its
// device-space footprint, uploaded and drawn at that position. Scaling goes
// through bilinear interpolation, so an upscaled blur buffer stays smooth.
//
// Upload or draw failures do not stop the frame; the first one is kept and
// returned by Err, and every failure is logged at Warn.
//
// Target is NOT safe for concurrent use. Create one per frame and call
// Release when the frame has been presented.
type Target struct {
	dc     gpucontext.TextureDrawer
	width  int
	height int

	matrix surface.Matrix
	stack  []surface.Matrix

	textures []gpucontext.Texture
	err      error
}

// NewTarget creates a canvas of the given size drawing onto dc.
func NewTarget(dc gpucontext.TextureDrawer, width, height int) (*Target, error) {
	if dc == nil || dc.TextureCreator() == nil {
		return nil, ErrNoTextureCreator
	}
	return &Target{
		dc:     dc,
		width:  max(1, width),
		height: max(1, height),
		matrix: surface.Identity(),
	}, nil
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Format returns the pixel format of uploaded textures.
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Tag returns surface.TagNone: a GPU target is an ordinary draw destination.
func (t *Target) Tag() surface.Tag { return surface.TagNone }

// Push saves the current transform.
func (t *Target) Push() {
	t.stack = append(t.stack, t.matrix)
}

// Pop restores the last saved transform.
func (t *Target) Pop() {
	if len(t.stack) == 0 {
		return
	}
	t.matrix = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

// Translate moves the origin.
func (t *Target) Translate(x, y float64) {
	t.matrix = t.matrix.Multiply(surface.Translate(x, y))
}

// Scale scales the current space.
func (t *Target) Scale(x, y float64) {
	t.matrix = t.matrix.Multiply(surface.Scale(x, y))
}

// Matrix returns the current transform.
func (t *Target) Matrix() surface.Matrix { return t.matrix }

// Clear covers the whole target with col.
func (t *Target) Clear(col color.Color) {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
	t.upload(img, 0, 0)
}

// FillRect composites col into the rectangle under the current transform.
func (t *Target) FillRect(x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r, ok := t.deviceRect(x, y, w, h)
	if !ok {
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
	t.upload(img, r.Min.X, r.Min.Y)
}

// DrawImage draws img with its top-left corner at the current origin.
func (t *Target) DrawImage(img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	r, ok := t.deviceRect(0, 0, float64(b.Dx()), float64(b.Dy()))
	if !ok {
		return
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	if t.matrix.A == 1 && t.matrix.E == 1 {
		xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	} else {
		// Source pixel space -> current space -> texture space.
		m := surface.Translate(-float64(r.Min.X), -float64(r.Min.Y)).
			Multiply(t.matrix).
			Multiply(surface.Translate(-float64(b.Min.X), -float64(b.Min.Y)))
		xdraw.BiLinear.Transform(dst, m.Aff3(), img, b, xdraw.Src, nil)
	}
	t.upload(dst, r.Min.X, r.Min.Y)
}

// Err returns the first upload or draw error since creation.
func (t *Target) Err() error { return t.err }

// Textures returns the number of textures created by this target.
func (t *Target) Textures() int { return len(t.textures) }

// Release destroys every texture created by this target. The target stays
// usable.
func (t *Target) Release() {
	for _, tex := range t.textures {
		if d, ok := tex.(textureDestroyer); ok {
			d.Destroy()
		}
	}
	t.textures = nil
}

// deviceRect maps a rectangle of the current space to integer device
// coordinates. Rotated and skewed transforms are rejected.
func (t *Target) deviceRect(x, y, w, h float64) (image.Rectangle, bool) {
	if !t.matrix.IsAxisAligned() {
		frost.Logger().Warn("gpu: transform is not axis aligned, draw skipped")
		return image.Rectangle{}, false
	}
	x0, y0 := t.matrix.TransformPoint(x, y)
	x1, y1 := t.matrix.TransformPoint(x+w, y+h)

	r := image.Rect(
		int(math.Floor(min(x0, x1))),
		int(math.Floor(min(y0, y1))),
		int(math.Ceil(max(x0, x1))),
		int(math.Ceil(max(y0, y1))),
	)
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

// upload turns img into a texture and draws it at (x, y).
func (t *Target) upload(img *image.RGBA, x, y int) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	tex, err := t.dc.TextureCreator().NewTextureFromRGBA(w, h, img.Pix)
	if err != nil {
		t.fail(fmt.Errorf("gpu: texture upload %dx%d: %w", w, h, err))
		return
	}

	// image.RGBA is premultiplied; blend accordingly.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}
	t.textures = append(t.textures, tex)

	if err := t.dc.DrawTexture(tex, float32(x), float32(y)); err != nil {
		t.fail(fmt.Errorf("gpu: draw texture at (%d,%d): %w", x, y, err))
	}
}

func (t *Target) fail(err error) {
	frost.Logger().Warn("gpu: composite failed", "err", err)
	if t.err == nil {
		t.err = err
	}
}

var _ surface.Canvas = (*Target)(nil)
