// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/frost/surface"
)

// captureSurface is the offscreen buffer and canvas used to snapshot the
// root hierarchy. The canvas is tagged TagCapture and is never handed to the
// host's normal draw pass.
type captureSurface struct {
	buf    *image.RGBA
	canvas *surface.ImageCanvas
}

// newCaptureSurface allocates a transparent buffer of the given size.
// Only RGBA8 buffers can be allocated; other formats fall back with a warning.
func newCaptureSurface(size Size, format gputypes.TextureFormat) *captureSurface {
	if format != gputypes.TextureFormatRGBA8Unorm {
		Logger().Warn("frost: unsupported capture format, using RGBA8",
			"format", format)
	}

	buf := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	Logger().Debug("frost: capture surface allocated",
		"width", size.Width, "height", size.Height)

	return &captureSurface{
		buf:    buf,
		canvas: surface.NewImageCanvasForRGBA(buf, surface.WithTag(surface.TagCapture|surface.TagOffscreen)),
	}
}

// Size returns the buffer size.
func (s *captureSurface) Size() Size {
	b := s.buf.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Erase clears the buffer to fully transparent.
func (s *captureSurface) Erase() {
	clear(s.buf.Pix)
}

// Rebind stores the buffer returned by a blur pass. A different buffer
// instance moves the canvas onto it, so the next capture does not write
// into a stale one.
func (s *captureSurface) Rebind(buf *image.RGBA) {
	if buf == nil || buf == s.buf {
		return
	}
	s.buf = buf
	s.canvas.SetImage(buf)
	Logger().Debug("frost: capture canvas rebound",
		"width", buf.Bounds().Dx(), "height", buf.Bounds().Dy())
}

// Release drops the buffer and canvas.
func (s *captureSurface) Release() {
	s.buf = nil
	s.canvas = nil
}
